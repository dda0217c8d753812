// Package storage persists immutable PNG artifacts in Supabase Storage.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// ErrNotFound reports a download of an object the bucket does not hold,
// as opposed to a transport or service failure.
var ErrNotFound = errors.New("object not found")

type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewClient(supabaseURL, serviceKey, bucket string) (*Client, error) {
	if supabaseURL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the PNG under its generated filename and returns the public
// URL. Artifacts are immutable: filenames are unique, so upsert stays off.
func (c *Client) Upload(filename string, data []byte) (string, error) {
	contentType := "image/png"
	_, err := c.client.UploadFile(c.bucket, filename, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return c.PublicURL(filename), nil
}

// Download fetches a stored artifact by name. A missing object comes back
// wrapped in ErrNotFound; any other failure (network, auth, service) does not,
// so callers can tell a 404 from an outage.
func (c *Client) Download(filename string) ([]byte, error) {
	data, err := c.client.DownloadFile(c.bucket, filename)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}

// IsNotFound reports whether a storage error describes a missing object.
// storage-go folds the HTTP response into the error message, so the check
// sniffs for the shapes Supabase uses: a 404 status or a not_found error
// payload.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not_found") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "404")
}

func (c *Client) PublicURL(filename string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, filename)
}

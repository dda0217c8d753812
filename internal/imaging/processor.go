package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ThumbnailSize is the edge length of the canonical artifact.
const ThumbnailSize = 256

var (
	// ErrDownload means the source image could not be fetched.
	ErrDownload = errors.New("failed to download image")
	// ErrDecode means the fetched bytes were not a decodable image.
	ErrDecode = errors.New("failed to decode image")
)

// Processor turns a transient provider URL into the final PNG artifact.
type Processor struct {
	httpClient *http.Client
}

func NewProcessor() *Processor {
	return &Processor{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Process downloads the image, removes the white background, resizes to the
// 256x256 thumbnail and encodes it as PNG. It returns the encoded bytes and a
// freshly generated unique filename.
//
// The transparency filter runs before the resize: resampling first would blur
// the white threshold boundary and change which pixels get cut out.
func (p *Processor) Process(ctx context.Context, imageURL string) ([]byte, string, error) {
	data, err := p.download(ctx, imageURL)
	if err != nil {
		return nil, "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	filtered := WhiteToTransparent(ToRGBA(img))
	thumb := ResizeSquash(filtered, ThumbnailSize, ThumbnailSize)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, "", fmt.Errorf("failed to encode png: %w", err)
	}

	filename := uuid.NewString() + ".png"
	return buf.Bytes(), filename, nil
}

func (p *Processor) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrDownload, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	return data, nil
}

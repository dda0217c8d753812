package storage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mascot-logo-backend/internal/storage"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"supabase not_found payload", errors.New(`{"statusCode":"404","error":"not_found","message":"Object not found"}`), true},
		{"plain object not found", errors.New("Object not found"), true},
		{"status code only", errors.New("unexpected status: 404"), true},
		{"connection refused", errors.New("dial tcp: connect: connection refused"), false},
		{"auth failure", errors.New("invalid signature: 403 Forbidden"), false},
		{"timeout", fmt.Errorf("context deadline exceeded"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storage.IsNotFound(tc.err))
		})
	}
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := storage.NewClient("", "service-key", "mascot-logos")
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	c, err := storage.NewClient("https://project.supabase.co/", "service-key", "mascot-logos")
	require.NoError(t, err)

	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/mascot-logos/abc.png",
		c.PublicURL("abc.png"),
	)
}

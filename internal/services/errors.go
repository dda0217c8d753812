package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSynthesis reports a failed image-generation call.
	ErrSynthesis = errors.New("image synthesis failed")
	// ErrStoreUnavailable reports a document- or blob-store failure. There is
	// no local fallback; the request fails.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrArtifactNotFound reports a serve request for an artifact the blob
	// store does not hold.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// ModerationError is the terminal outcome of a prompt the moderation stage
// refused to repair. It is user-facing and never retried.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	if e.Reason == "" {
		return "inappropriate prompt"
	}
	return fmt.Sprintf("inappropriate prompt: %s", e.Reason)
}

package sync

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means the credential (or, for downloads, the remote
// document id) has not been set up yet.
var ErrNotConfigured = errors.New("sync not configured")

// ErrVersionSkew means the remote envelope was written by a newer client.
// The document is never interpreted in that case.
var ErrVersionSkew = errors.New("remote data uses a newer sync version")

// ErrMalformedDocument means the fetched document exists but does not carry
// the expected data file. Treated as a transport-class failure by callers.
var ErrMalformedDocument = errors.New("pet data missing from remote document")

// TransportError is any non-success HTTP response, with the status preserved.
type TransportError struct {
	Status int
}

func (e TransportError) Error() string {
	return fmt.Sprintf("github api error: status %d", e.Status)
}

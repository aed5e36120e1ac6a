package webdav

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a sync client failure into a closed set the caller
// can switch on. No caller should ever need to match error message text.
type ErrorKind int

const (
	// KindRemote is the catch-all for HTTP statuses with no more specific
	// classification.
	KindRemote ErrorKind = iota

	// KindConfigIncomplete marks a client constructed with a missing
	// url, username or password.
	KindConfigIncomplete

	// KindUnauthorized marks rejected credentials (401/403).
	KindUnauthorized

	// KindNotFound marks a missing remote file or folder (404).
	KindNotFound

	// KindConnectionFailed marks transport-level failures: DNS, refused
	// connections, timeouts.
	KindConnectionFailed

	// KindMalformedResponse marks a downloaded body that is not valid
	// JSON of the expected shape.
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfigIncomplete:
		return "config incomplete"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindConnectionFailed:
		return "connection failed"
	case KindMalformedResponse:
		return "malformed response"
	default:
		return "remote error"
	}
}

// Error is the only error type crossing the sync client boundary.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		return fmt.Sprintf("webdav %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("webdav %s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind from any error wrapping an [Error]. Errors from
// outside the sync client report KindRemote.
func KindOf(err error) ErrorKind {
	var webdavErr *Error
	if errors.As(err, &webdavErr) {
		return webdavErr.Kind
	}
	return KindRemote
}

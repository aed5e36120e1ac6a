package settings

import "errors"

var (
	// ErrSecureStoreUnavailable is returned when the encryption key cannot
	// be loaded or the encrypted partition cannot be opened. There is no
	// plaintext fallback; the only recovery is [Manager.Reset], which
	// discards the encrypted contents.
	ErrSecureStoreUnavailable = errors.New("secure settings store unavailable")

	// ErrInvalidImport is returned when an imported settings payload is
	// not a JSON object.
	ErrInvalidImport = errors.New("invalid settings data")
)

package crypto

// KeyChain owns the locally generated symmetric key material protecting the
// encrypted settings partition. The master secret is generated once,
// persisted in a plain keystore file outside the encrypted store itself, and
// never leaves the local machine. Loss of the keystore invalidates all
// encrypted data irrecoverably.
type KeyChain interface {
	// LoadOrCreateMasterSecret returns the 256-bit master secret from the
	// keystore file, generating and persisting a fresh one on first run.
	LoadOrCreateMasterSecret() ([]byte, error)

	// DeriveStoreKey derives a purpose-bound 256-bit key from the master
	// secret. The label domain-separates keys so that the same secret can
	// back several stores without key reuse.
	DeriveStoreKey(master []byte, label string) ([]byte, error)

	// Seal marshals data to JSON and encrypts it with key using
	// AES-256-GCM. The result is a Base64 string of nonce ‖ ciphertext.
	Seal(data any, key []byte) (string, error)

	// Open decrypts a blob produced by Seal and unmarshals the plaintext
	// JSON into target, which must be a non-nil pointer. Returns an error
	// if the key is wrong or the blob is corrupted.
	Open(sealedB64 string, key []byte, target any) error
}

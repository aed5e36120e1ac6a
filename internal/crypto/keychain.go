package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"
)

// keyChain is the private implementation of [KeyChain]. The keystore is a
// small JSON file holding the hex-encoded master secret; it lives next to
// the settings store files but is never encrypted itself.
type keyChain struct {
	keystorePath string
}

type keystoreFile struct {
	EncryptionKey string `json:"encryption_key"`
}

// NewKeyChain constructs a [KeyChain] backed by the keystore file at path.
func NewKeyChain(path string) KeyChain {
	return &keyChain{keystorePath: path}
}

// LoadOrCreateMasterSecret implements [KeyChain]. On first run it reads 32
// random bytes from the OS CSPRNG, persists them hex-encoded with 0600
// permissions, and returns them. On later runs it returns the stored secret.
// A keystore file that exists but cannot be read or decoded is an error, not
// a trigger for silent regeneration: regenerating would orphan all data
// sealed under the old secret.
func (k *keyChain) LoadOrCreateMasterSecret() ([]byte, error) {
	raw, err := os.ReadFile(k.keystorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read keystore: %w", err)
		}
		return k.createMasterSecret()
	}

	var ks keystoreFile
	if err = json.Unmarshal(raw, &ks); err != nil {
		return nil, fmt.Errorf("decode keystore: %w", err)
	}

	secret, err := hex.DecodeString(ks.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode keystore secret: %w", err)
	}
	if len(secret) != 32 {
		return nil, fmt.Errorf("keystore secret has wrong length %d", len(secret))
	}

	return secret, nil
}

func (k *keyChain) createMasterSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, fmt.Errorf("generate master secret: %w", err)
	}

	payload, err := json.MarshalIndent(keystoreFile{EncryptionKey: hex.EncodeToString(secret)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode keystore: %w", err)
	}

	if dir := filepath.Dir(k.keystorePath); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create keystore dir: %w", err)
		}
	}
	if err = os.WriteFile(k.keystorePath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("write keystore: %w", err)
	}

	return secret, nil
}

// DeriveStoreKey implements [KeyChain]. It derives a 256-bit key from the
// master secret via HKDF-SHA256, bound to the given label.
func (k *keyChain) DeriveStoreKey(master []byte, label string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(label)), key); err != nil {
		return nil, fmt.Errorf("derive store key: %w", err)
	}
	return key, nil
}

// Seal implements [KeyChain]. It marshals data to JSON, then encrypts it
// with key using AES-256-GCM. The output is a Base64 (standard encoding)
// string of the blob: nonce (12 bytes) ‖ ciphertext.
func (k *keyChain) Seal(data any, key []byte) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Open can split it out.
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [KeyChain]. It Base64-decodes sealedB64, splits out the
// nonce, decrypts the ciphertext with key via AES-256-GCM, and unmarshals
// the resulting JSON into target. An authentication-tag mismatch almost
// always means the keystore no longer matches what sealed the data.
func (k *keyChain) Open(sealedB64 string, key []byte, target any) error {
	blob, err := base64.StdEncoding.DecodeString(sealedB64)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("decrypt data: %w", err)
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

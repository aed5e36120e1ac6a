package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateMasterSecret_GeneratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	kc := NewKeyChain(path)

	s1, err := kc.LoadOrCreateMasterSecret()
	if err != nil {
		t.Fatalf("LoadOrCreateMasterSecret error: %v", err)
	}
	if len(s1) != 32 {
		t.Fatalf("master secret length = %d, want 32", len(s1))
	}

	s2, err := kc.LoadOrCreateMasterSecret()
	if err != nil {
		t.Fatalf("LoadOrCreateMasterSecret error on reload: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatalf("expected reloaded secret to match the generated one")
	}
}

func TestLoadOrCreateMasterSecret_FreshKeystoresDiffer(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewKeyChain(filepath.Join(dir, "a.json")).LoadOrCreateMasterSecret()
	if err != nil {
		t.Fatalf("LoadOrCreateMasterSecret error: %v", err)
	}
	s2, err := NewKeyChain(filepath.Join(dir, "b.json")).LoadOrCreateMasterSecret()
	if err != nil {
		t.Fatalf("LoadOrCreateMasterSecret error: %v", err)
	}

	if bytes.Equal(s1, s2) {
		t.Fatalf("expected independent keystores to generate different secrets")
	}
}

func TestLoadOrCreateMasterSecret_CorruptKeystoreIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt keystore: %v", err)
	}

	_, err := NewKeyChain(path).LoadOrCreateMasterSecret()
	if err == nil {
		t.Fatal("expected error for corrupt keystore, got nil")
	}
}

func TestDeriveStoreKey_DeterministicPerLabel(t *testing.T) {
	kc := NewKeyChain(filepath.Join(t.TempDir(), "keystore.json"))
	master := bytes.Repeat([]byte{0xAB}, 32)

	k1, err := kc.DeriveStoreKey(master, "settings")
	if err != nil {
		t.Fatalf("DeriveStoreKey error: %v", err)
	}
	k2, err := kc.DeriveStoreKey(master, "settings")
	if err != nil {
		t.Fatalf("DeriveStoreKey error: %v", err)
	}
	k3, err := kc.DeriveStoreKey(master, "other")
	if err != nil {
		t.Fatalf("DeriveStoreKey error: %v", err)
	}

	if len(k1) != 32 {
		t.Fatalf("derived key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected same label to derive the same key")
	}
	if bytes.Equal(k1, k3) {
		t.Fatalf("expected different labels to derive different keys")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	kc := NewKeyChain(filepath.Join(t.TempDir(), "keystore.json"))
	key := bytes.Repeat([]byte{0x42}, 32)

	in := map[string]any{"sync.webdav.password": "s3cret", "ai.maxTokens": float64(2000)}

	blob, err := kc.Seal(in, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out map[string]any
	if err = kc.Open(blob, key, &out); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	if out["sync.webdav.password"] != "s3cret" {
		t.Errorf("password = %v, want s3cret", out["sync.webdav.password"])
	}
	if out["ai.maxTokens"] != float64(2000) {
		t.Errorf("maxTokens = %v, want 2000", out["ai.maxTokens"])
	}
}

func TestOpen_WrongKeyFails(t *testing.T) {
	kc := NewKeyChain(filepath.Join(t.TempDir(), "keystore.json"))

	blob, err := kc.Seal(map[string]string{"k": "v"}, bytes.Repeat([]byte{0x01}, 32))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out map[string]string
	if err = kc.Open(blob, bytes.Repeat([]byte{0x02}, 32), &out); err == nil {
		t.Fatal("expected decryption failure with the wrong key, got nil")
	}
}

func TestOpen_TruncatedBlobFails(t *testing.T) {
	kc := NewKeyChain(filepath.Join(t.TempDir(), "keystore.json"))

	var out map[string]string
	if err := kc.Open("QQ==", bytes.Repeat([]byte{0x01}, 32), &out); err == nil {
		t.Fatal("expected error for blob shorter than the nonce, got nil")
	}
}

// Package crypto encrypts store values at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	cacheFileName = "nonce-cache.json"
)

var (
	// ErrInvalidKey is returned when the configured key is not 64 hex characters.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrDecryptionFailed is returned when a value was written with another key or is corrupted.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when a value is shorter than the nonce.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Encryptor seals values with AES-256-GCM.
//
// Ciphertexts are remembered per plaintext hash, so saving an unchanged
// board produces byte-identical output. The git backend relies on this to
// avoid committing a new blob for every save.
type Encryptor struct {
	gcm      cipher.AEAD
	cache    map[string][]byte // sha256(plaintext) -> nonce + ciphertext
	cacheDir string
	mu       sync.RWMutex
}

// NewEncryptor creates an Encryptor from a hex-encoded key. cacheDir holds
// the ciphertext cache; empty keeps it in memory only.
func NewEncryptor(hexKey, cacheDir string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	e := &Encryptor{
		gcm:      gcm,
		cacheDir: cacheDir,
		cache:    make(map[string][]byte),
	}
	if cacheDir != "" {
		// A missing or unreadable cache only costs determinism
		_ = e.loadCache()
	}
	return e, nil
}

// Encrypt returns nonce + ciphertext + tag for plaintext.
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	sum := sha256.Sum256(plaintext)
	hashKey := hex.EncodeToString(sum[:])

	e.mu.RLock()
	cached, ok := e.cache[hashKey]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	sealed := e.gcm.Seal(nonce, nonce, plaintext, nil)

	e.mu.Lock()
	e.cache[hashKey] = sealed
	e.mu.Unlock()

	if e.cacheDir != "" {
		_ = e.SaveCache()
	}
	return sealed, nil
}

// Decrypt opens a value produced by Encrypt.
func (e *Encryptor) Decrypt(sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := e.gcm.Open(nil, sealed[:NonceSize], sealed[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (e *Encryptor) cachePath() string {
	return filepath.Join(e.cacheDir, cacheFileName)
}

func (e *Encryptor) loadCache() error {
	data, err := os.ReadFile(e.cachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// []byte values round-trip as base64 strings
	var entries map[string][]byte
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse nonce cache: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range entries {
		e.cache[k] = v
	}
	return nil
}

// SaveCache writes the ciphertext cache to disk.
func (e *Encryptor) SaveCache() error {
	if err := os.MkdirAll(e.cacheDir, 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	e.mu.RLock()
	data, err := json.Marshal(e.cache)
	e.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode nonce cache: %w", err)
	}

	return os.WriteFile(e.cachePath(), data, 0o600)
}

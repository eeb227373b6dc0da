package crypto

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/flowsync/internal/domain"
)

// Store wraps a KeyValueStore and encrypts every value it writes.
// Values are stored as JSON strings holding the base64 ciphertext, which
// keeps them valid for backends that embed raw JSON.
type Store struct {
	inner domain.KeyValueStore
	enc   *Encryptor
}

// Ensure Store implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*Store)(nil)

// NewStore creates an encrypting wrapper around inner.
func NewStore(inner domain.KeyValueStore, enc *Encryptor) *Store {
	return &Store{inner: inner, enc: enc}
}

// Get reads and decrypts the value under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	var sealed []byte
	if err := json.Unmarshal(raw, &sealed); err != nil {
		return nil, false, fmt.Errorf("decode %s: value is not encrypted: %w", key, err)
	}
	plaintext, err := s.enc.Decrypt(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("decrypt %s: %w", key, err)
	}
	return plaintext, true, nil
}

// Put encrypts value and writes it under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	sealed, err := s.enc.Encrypt(value)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	raw, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.inner.Put(ctx, key, raw)
}

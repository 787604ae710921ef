// Package sealed encrypts selected values of a key-value store at rest.
package sealed

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

const (
	// blobVersion is the version byte for the sealed blob format.
	blobVersion = 0x01

	// nonceSize is the AES-GCM nonce size (12 bytes is standard)
	nonceSize = 12

	// KeySize is the required key size for AES-256
	KeySize = 32
)

var (
	// ErrInvalidKeySize is returned when the encryption key is not 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be 32 bytes")

	// ErrInvalidBlobSize is returned when the sealed blob is too small.
	ErrInvalidBlobSize = errors.New("sealed blob is too small")

	// ErrUnsupportedVersion is returned when the blob version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported sealed blob version")

	// ErrDecryptionFailed is returned when decryption fails (wrong key or corrupted data).
	ErrDecryptionFailed = errors.New("failed to decrypt sealed blob")
)

// Verify interface compliance
var _ driven.KeyValueStore = (*Store)(nil)

// Sealer handles AES-256-GCM encryption of stored values.
// The sealed format is: version(1) || nonce(12) || ciphertext(N)
type Sealer struct {
	gcm cipher.AEAD
}

// NewSealer creates a sealer with the given 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Sealer{gcm: gcm}, nil
}

// NewSealerFromHex decodes a 64 character hex key
func NewSealerFromHex(key string) (*Sealer, error) {
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	return NewSealer(raw)
}

// Seal encrypts plaintext into a versioned blob
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := s.gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 1+nonceSize+len(ciphertext))
	blob[0] = blobVersion
	copy(blob[1:1+nonceSize], nonce)
	copy(blob[1+nonceSize:], ciphertext)

	return blob, nil
}

// Open decrypts a blob produced by Seal
func (s *Sealer) Open(blob []byte) ([]byte, error) {
	minSize := 1 + nonceSize + s.gcm.Overhead()
	if len(blob) < minSize {
		return nil, ErrInvalidBlobSize
	}

	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, blob[0])
	}

	plaintext, err := s.gcm.Open(nil, blob[1:1+nonceSize], blob[1+nonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// Store wraps a KeyValueStore and seals the values of the listed keys.
// Other keys pass through untouched.
type Store struct {
	next   driven.KeyValueStore
	sealer *Sealer
	keys   map[string]bool
}

// NewStore wraps next, sealing values stored under keys
func NewStore(next driven.KeyValueStore, sealer *Sealer, keys ...string) *Store {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return &Store{next: next, sealer: sealer, keys: set}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.next.Get(ctx, key)
	if err != nil || !s.keys[key] {
		return value, err
	}
	plaintext, err := s.sealer.Open(value)
	switch {
	case err == nil:
		return plaintext, nil
	case errors.Is(err, ErrInvalidBlobSize), errors.Is(err, ErrUnsupportedVersion):
		// written before sealing was enabled; sealed on the next Set
		return value, nil
	default:
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.keys[key] {
		blob, err := s.sealer.Seal(value)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		value = blob
	}
	return s.next.Set(ctx, key, value)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.next.Remove(ctx, key)
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.next.Keys(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

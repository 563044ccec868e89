package snapshot

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecrypt is returned when a stored blob fails authentication, which
// means it was truncated, corrupted, or written with a different key.
var ErrDecrypt = errors.New("snapshot: decrypt failed")

// Codec seals and opens snapshot blobs with XChaCha20-Poly1305. The
// nonce is generated per write and stored as the blob prefix. A nil
// Codec passes blobs through unchanged.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a hex-encoded 32-byte key. An empty key
// returns a nil codec, meaning snapshots are stored in plaintext.
func NewCodec(hexKey string) (*Codec, error) {
	if hexKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid key encoding: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid key: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Seal encrypts plaintext into nonce||ciphertext.
func (c *Codec) Seal(plaintext []byte) ([]byte, error) {
	if c == nil {
		return plaintext, nil
	}
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("snapshot: nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func (c *Codec) Open(blob []byte) ([]byte, error) {
	if c == nil {
		return blob, nil
	}
	if len(blob) < c.aead.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, ciphertext := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

package sealbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm identifies an AEAD algorithm.
type Algorithm string

const (
	// AES256GCM is AES-256 in Galois/Counter Mode.
	AES256GCM Algorithm = "AES-256-GCM"
	// ChaCha20Poly1305 is the ChaCha20-Poly1305 AEAD.
	ChaCha20Poly1305 Algorithm = "ChaCha20-Poly1305"
)

const (
	// NonceSize is the nonce size in bytes for both supported algorithms.
	NonceSize = 12
	// TagSize is the authentication tag size in bytes for both supported
	// algorithms.
	TagSize = 16
)

// randReader is the random source used for nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Cipher performs authenticated encryption with a selectable algorithm.
// Both algorithms satisfy the same contract: identical seal/open signatures,
// identical wire format sizes, identical failure semantics.
type Cipher struct {
	algorithm Algorithm
}

// NewCipher returns a Cipher for the given algorithm.
func NewCipher(algorithm Algorithm) (*Cipher, error) {
	switch algorithm {
	case AES256GCM, ChaCha20Poly1305:
		return &Cipher{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// Algorithm returns the cipher's AEAD algorithm.
func (c *Cipher) Algorithm() Algorithm {
	return c.algorithm
}

// Seal encrypts plaintext with a fresh random nonce and returns
// nonce || ciphertext || tag.
//
// Nonce uniqueness for a given key relies on the random generator; with
// 96-bit random nonces the collision risk grows with the number of messages
// sealed under one key. Callers sealing very large message volumes under a
// single long-lived key should rotate keys or salts.
func (c *Cipher) Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(c.reader(), nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext||tag to the nonce, yielding the wire format
	// in one allocation.
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open parses nonce || ciphertext || tag, decrypts, and verifies the tag.
// It returns ErrAuthenticationFailed for any tampered, truncated, or
// otherwise malformed input; plaintext is never returned on a failed
// verification.
func (c *Cipher) Open(sealed, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: sealed message too short", ErrAuthenticationFailed)
	}

	nonce := sealed[:NonceSize]
	ciphertext := sealed[NonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

func (c *Cipher) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), SymmetricKeySize)
	}

	switch c.algorithm {
	case AES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, c.algorithm)
	}
}

func (c *Cipher) reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

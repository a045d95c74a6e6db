package sealbox

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, SymmetricKeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	return key
}

func TestNewCipher_UnsupportedAlgorithm(t *testing.T) {
	if _, err := NewCipher("ROT13"); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestCipher_SealOpen_RoundTrip(t *testing.T) {
	plaintexts := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello world")},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	for _, algorithm := range []Algorithm{AES256GCM, ChaCha20Poly1305} {
		for _, tt := range plaintexts {
			t.Run(string(algorithm)+"/"+tt.name, func(t *testing.T) {
				c, err := NewCipher(algorithm)
				if err != nil {
					t.Fatalf("NewCipher() error = %v", err)
				}
				key := testKey(t)

				sealed, err := c.Seal(tt.plaintext, key)
				if err != nil {
					t.Fatalf("Seal() error = %v", err)
				}

				// Wire format: nonce || ciphertext || tag, no length prefixes.
				if want := NonceSize + len(tt.plaintext) + TagSize; len(sealed) != want {
					t.Errorf("sealed length = %d, want %d", len(sealed), want)
				}

				opened, err := c.Open(sealed, key)
				if err != nil {
					t.Fatalf("Open() error = %v", err)
				}
				if !bytes.Equal(opened, tt.plaintext) {
					t.Errorf("opened = %v, want %v", opened, tt.plaintext)
				}
			})
		}
	}
}

func TestCipher_Seal_FreshNonce(t *testing.T) {
	c, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	key := testKey(t)

	first, err := c.Seal([]byte("same plaintext"), key)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	second, err := c.Seal([]byte("same plaintext"), key)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if bytes.Equal(first[:NonceSize], second[:NonceSize]) {
		t.Error("two seals used the same nonce")
	}
	if bytes.Equal(first, second) {
		t.Error("two seals produced identical sealed messages")
	}
}

func TestCipher_Open_TamperAnyBit(t *testing.T) {
	for _, algorithm := range []Algorithm{AES256GCM, ChaCha20Poly1305} {
		t.Run(string(algorithm), func(t *testing.T) {
			c, err := NewCipher(algorithm)
			if err != nil {
				t.Fatalf("NewCipher() error = %v", err)
			}
			key := testKey(t)

			sealed, err := c.Seal([]byte("hello"), key)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			// Flipping any single bit anywhere in the blob must fail
			// verification, including the nonce region.
			for i := 0; i < len(sealed)*8; i++ {
				tampered := make([]byte, len(sealed))
				copy(tampered, sealed)
				tampered[i/8] ^= 1 << (i % 8)

				plaintext, err := c.Open(tampered, key)
				if !errors.Is(err, ErrAuthenticationFailed) {
					t.Fatalf("bit %d: expected ErrAuthenticationFailed, got %v", i, err)
				}
				if plaintext != nil {
					t.Fatalf("bit %d: plaintext returned on failed verification", i)
				}
			}
		})
	}
}

func TestCipher_Open_WrongKey(t *testing.T) {
	c, err := NewCipher(ChaCha20Poly1305)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	sealed, err := c.Seal([]byte("hello"), testKey(t))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := c.Open(sealed, testKey(t)); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestCipher_Open_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		sealed []byte
	}{
		{"empty", nil},
		{"nonce only", make([]byte, NonceSize)},
		{"one byte short of minimum", make([]byte, NonceSize+TagSize-1)},
	}

	for _, algorithm := range []Algorithm{AES256GCM, ChaCha20Poly1305} {
		c, err := NewCipher(algorithm)
		if err != nil {
			t.Fatalf("NewCipher() error = %v", err)
		}
		key := testKey(t)

		for _, tt := range tests {
			t.Run(string(algorithm)+"/"+tt.name, func(t *testing.T) {
				if _, err := c.Open(tt.sealed, key); !errors.Is(err, ErrAuthenticationFailed) {
					t.Errorf("expected ErrAuthenticationFailed, got %v", err)
				}
			})
		}
	}
}

func TestCipher_Open_Truncated(t *testing.T) {
	c, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	key := testKey(t)

	sealed, err := c.Seal([]byte("a longer plaintext for truncation"), key)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := c.Open(sealed[:len(sealed)-1], key); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestCipher_InvalidKeySize(t *testing.T) {
	c, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	for _, size := range []int{0, 16, 64} {
		if _, err := c.Seal([]byte("x"), make([]byte, size)); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("Seal with %d-byte key: expected ErrInvalidKeySize, got %v", size, err)
		}
		if _, err := c.Open(make([]byte, NonceSize+TagSize), make([]byte, size)); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("Open with %d-byte key: expected ErrInvalidKeySize, got %v", size, err)
		}
	}
}

func TestCipher_CrossAlgorithmRejects(t *testing.T) {
	gcm, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	chacha, err := NewCipher(ChaCha20Poly1305)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	key := testKey(t)

	sealed, err := gcm.Seal([]byte("hello"), key)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := chacha.Open(sealed, key); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

package softkey

import (
	"crypto/ecdh"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// randReader is the random source used for key generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

var (
	// ErrInvalidKeyRef is returned when a stored key reference cannot be
	// loaded as a private key.
	ErrInvalidKeyRef = errors.New("invalid key reference")

	// ErrInvalidPeerKey is returned when the peer public key passed to a
	// shared-secret computation is not a valid point.
	ErrInvalidPeerKey = errors.New("invalid peer public key")

	// ErrUnknownCurve is returned for an unrecognized curve name.
	ErrUnknownCurve = errors.New("unknown curve")
)

// Key is a software private key. The reference blob returned by Ref contains
// the private scalar; callers who need non-exportable keys must use a
// hardware provider instead.
type Key interface {
	// Ref returns the blob that Load accepts to reconstruct this key.
	Ref() []byte
	// PublicKey returns the raw public key (X||Y for P-256, 32 bytes for
	// Curve25519).
	PublicKey() []byte
	// SharedSecret computes the Diffie-Hellman shared secret with the raw
	// peer public key.
	SharedSecret(peerPublicKey []byte) ([]byte, error)
}

// Provider generates and loads software keys for one curve.
type Provider interface {
	// Available reports whether the provider can be used. Software
	// providers are always available.
	Available() bool
	// Generate creates a fresh private key.
	Generate() (Key, error)
	// Load reconstructs a key from a reference blob.
	Load(ref []byte) (Key, error)
}

// New returns a software provider for the named curve ("P-256" or "X25519").
func New(curve string) (Provider, error) {
	switch curve {
	case "P-256":
		return p256Provider{}, nil
	case "X25519":
		return x25519Provider{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
}

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

type p256Provider struct{}

func (p256Provider) Available() bool { return true }

func (p256Provider) Generate() (Key, error) {
	priv, err := ecdh.P256().GenerateKey(reader())
	if err != nil {
		return nil, err
	}
	return &p256Key{priv: priv}, nil
}

func (p256Provider) Load(ref []byte) (Key, error) {
	priv, err := ecdh.P256().NewPrivateKey(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyRef, err)
	}
	return &p256Key{priv: priv}, nil
}

type p256Key struct {
	priv *ecdh.PrivateKey
}

func (k *p256Key) Ref() []byte {
	return k.priv.Bytes()
}

func (k *p256Key) PublicKey() []byte {
	// Bytes() is the uncompressed X9.63 form; strip the prefix byte.
	return k.priv.PublicKey().Bytes()[1:]
}

func (k *p256Key) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	x963 := append([]byte{0x04}, peerPublicKey...)
	peer, err := ecdh.P256().NewPublicKey(x963)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeerKey, err)
	}
	return k.priv.ECDH(peer)
}

type x25519Provider struct{}

func (x25519Provider) Available() bool { return true }

func (x25519Provider) Generate() (Key, error) {
	var secret x25519.Key
	if _, err := io.ReadFull(reader(), secret[:]); err != nil {
		return nil, err
	}

	key := &x25519Key{secret: secret}
	x25519.KeyGen(&key.public, &key.secret)
	return key, nil
}

func (x25519Provider) Load(ref []byte) (Key, error) {
	if len(ref) != x25519.Size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyRef, len(ref), x25519.Size)
	}

	key := &x25519Key{}
	copy(key.secret[:], ref)
	x25519.KeyGen(&key.public, &key.secret)
	return key, nil
}

type x25519Key struct {
	secret x25519.Key
	public x25519.Key
}

func (k *x25519Key) Ref() []byte {
	ref := make([]byte, x25519.Size)
	copy(ref, k.secret[:])
	return ref
}

func (k *x25519Key) PublicKey() []byte {
	pub := make([]byte, x25519.Size)
	copy(pub, k.public[:])
	return pub
}

func (k *x25519Key) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if len(peerPublicKey) != x25519.Size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPeerKey, len(peerPublicKey), x25519.Size)
	}

	var peer, shared x25519.Key
	copy(peer[:], peerPublicKey)

	// Shared reports false for low-order peer points that would produce an
	// all-zero secret.
	if !x25519.Shared(&shared, &k.secret, &peer) {
		return nil, fmt.Errorf("%w: low-order point", ErrInvalidPeerKey)
	}
	return shared[:], nil
}

// SetRandReaderForTesting sets the random reader used by Generate.
// This is intended for testing only. Returns a function to restore the original reader.
// Since this package is internal, this function cannot be accessed by external code.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}

package sealbox

import (
	"github.com/sealbox/sealbox-go/internal/softkey"
)

// Curve identifies the elliptic curve used for key agreement.
type Curve string

const (
	// CurveP256 is the NIST P-256 curve. This is the default and the only
	// curve with all four public key encodings.
	CurveP256 Curve = "P-256"
	// CurveX25519 is Curve25519. It has no X9.63 encoding.
	CurveX25519 Curve = "X25519"
)

// PrivateKeyHandle is an opaque reference to a provider-owned private key.
// For hardware-backed keys the private scalar never crosses this interface;
// all operations that need it run inside the provider.
type PrivateKeyHandle interface {
	// Ref returns an opaque blob that the owning provider's Load method
	// accepts to reconstruct this handle. For hardware-backed keys this is
	// a key reference, never the raw scalar.
	Ref() []byte

	// PublicKey returns the raw public key bytes for the handle's curve.
	PublicKey() []byte

	// SharedSecret performs the Diffie-Hellman exchange with the raw peer
	// public key and returns the shared secret.
	SharedSecret(peerPublicKey []byte) ([]byte, error)
}

// HardwareKeyProvider generates and loads private keys bound to a root of
// trust, such as a secure enclave or HSM. A software fallback that keeps
// keys in process memory is available via NewSoftwareKeyProvider.
type HardwareKeyProvider interface {
	// Available reports whether the provider's root of trust is present.
	// When it returns false, all key operations fail with
	// ErrHardwareUnavailable.
	Available() bool

	// Curve returns the curve this provider's keys belong to.
	Curve() Curve

	// Generate creates a fresh non-exportable private key.
	Generate() (PrivateKeyHandle, error)

	// Load reconstructs a handle from a reference blob previously obtained
	// from PrivateKeyHandle.Ref.
	Load(ref []byte) (PrivateKeyHandle, error)
}

// softwareProvider adapts an internal software key provider to the
// HardwareKeyProvider interface.
type softwareProvider struct {
	curve Curve
	inner softkey.Provider
}

// NewSoftwareKeyProvider returns a software-only key provider for the given
// curve. Software keys live in process memory and their storage reference
// blobs contain the private scalar itself — use a hardware provider when
// keys must be non-exportable.
func NewSoftwareKeyProvider(curve Curve) (HardwareKeyProvider, error) {
	inner, err := softkey.New(string(curve))
	if err != nil {
		return nil, err
	}
	return &softwareProvider{curve: curve, inner: inner}, nil
}

func (s *softwareProvider) Available() bool {
	return s.inner.Available()
}

func (s *softwareProvider) Curve() Curve {
	return s.curve
}

func (s *softwareProvider) Generate() (PrivateKeyHandle, error) {
	key, err := s.inner.Generate()
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (s *softwareProvider) Load(ref []byte) (PrivateKeyHandle, error) {
	key, err := s.inner.Load(ref)
	if err != nil {
		return nil, err
	}
	return key, nil
}

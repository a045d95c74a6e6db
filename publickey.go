package sealbox

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/keyenc"
)

// KeyEncoding identifies a public key wire encoding.
type KeyEncoding string

const (
	// EncodingRaw is the bare point: 32-byte X || 32-byte Y for P-256,
	// 32 bytes for Curve25519.
	EncodingRaw KeyEncoding = "raw"
	// EncodingX963 is the ANSI X9.63 form: a point-form prefix byte
	// followed by the raw point. P-256 only; uncompressed points only.
	EncodingX963 KeyEncoding = "x963"
	// EncodingDER is an ASN.1 SubjectPublicKeyInfo structure.
	EncodingDER KeyEncoding = "der"
	// EncodingPEM is the DER bytes Base64-wrapped in a "PUBLIC KEY" block.
	EncodingPEM KeyEncoding = "pem"
)

// PublicKey is a validated elliptic-curve public key. Equality is defined on
// the underlying point, not on any particular encoding.
type PublicKey struct {
	curve Curve
	raw   []byte
}

// Curve returns the curve the key belongs to.
func (pk *PublicKey) Curve() Curve {
	return pk.curve
}

// Bytes returns the key in the requested encoding.
func (pk *PublicKey) Bytes(encoding KeyEncoding) ([]byte, error) {
	return marshalPublicKey(pk.curve, pk.raw, encoding)
}

// Equal reports whether both keys describe the same point on the same curve.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.curve == other.curve &&
		subtle.ConstantTimeCompare(pk.raw, other.raw) == 1
}

// parsePublicKey validates and decodes key bytes into the canonical raw form.
func parsePublicKey(curve Curve, data []byte, encoding KeyEncoding) (*PublicKey, error) {
	raw, err := keyenc.Parse(keyenc.Curve(curve), data, keyenc.Encoding(encoding))
	if err != nil {
		return nil, wrapKeyEncodingError(encoding, err)
	}
	return &PublicKey{curve: curve, raw: raw}, nil
}

func marshalPublicKey(curve Curve, raw []byte, encoding KeyEncoding) ([]byte, error) {
	out, err := keyenc.Marshal(keyenc.Curve(curve), raw, keyenc.Encoding(encoding))
	if err != nil {
		return nil, wrapKeyEncodingError(encoding, err)
	}
	return out, nil
}

// wrapKeyEncodingError converts internal keyenc errors to public errors so
// that errors.Is() checks work with public sentinel errors.
func wrapKeyEncodingError(encoding KeyEncoding, err error) error {
	switch {
	case errors.Is(err, keyenc.ErrUnsupportedEncoding), errors.Is(err, keyenc.ErrUnknownEncoding):
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, encoding)
	default:
		return &MalformedKeyError{Encoding: encoding, Err: err}
	}
}

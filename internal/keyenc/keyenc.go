package keyenc

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// Encoding identifies a public key wire encoding.
type Encoding string

const (
	// Raw is the bare point: 32-byte X || 32-byte Y for P-256, 32 bytes
	// for Curve25519.
	Raw Encoding = "raw"
	// X963 is the ANSI X9.63 form: a point-form prefix byte followed by
	// the raw point. Only the uncompressed form (0x04) is accepted.
	X963 Encoding = "x963"
	// DER is an ASN.1 SubjectPublicKeyInfo structure.
	DER Encoding = "der"
	// PEM is the DER bytes Base64-wrapped in a "PUBLIC KEY" block.
	PEM Encoding = "pem"
)

// Curve identifies the elliptic curve a key belongs to.
type Curve string

const (
	// P256 is the NIST P-256 curve.
	P256 Curve = "P-256"
	// X25519 is Curve25519 used for Diffie-Hellman.
	X25519 Curve = "X25519"
)

const (
	// P256RawSize is the size of a raw P-256 public key in bytes.
	P256RawSize = 64
	// P256X963Size is the size of an uncompressed X9.63 P-256 public key.
	P256X963Size = 65
	// X25519RawSize is the size of a raw Curve25519 public key in bytes.
	X25519RawSize = 32

	// uncompressedForm is the X9.63 point-form prefix for uncompressed points.
	uncompressedForm = 0x04

	pemBlockType = "PUBLIC KEY"
)

var (
	// ErrUnknownEncoding is returned for an unrecognized encoding name.
	ErrUnknownEncoding = errors.New("unknown key encoding")

	// ErrUnsupportedEncoding is returned when the encoding does not exist
	// for the curve (X9.63 for Curve25519).
	ErrUnsupportedEncoding = errors.New("encoding not supported for curve")

	// ErrUnknownCurve is returned for an unrecognized curve name.
	ErrUnknownCurve = errors.New("unknown curve")

	// ErrInvalidLength is returned when the key bytes have the wrong length.
	ErrInvalidLength = errors.New("invalid key length")

	// ErrInvalidPoint is returned when the bytes do not describe a valid
	// point on the expected curve.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrInvalidFraming is returned on broken ASN.1 or PEM framing.
	ErrInvalidFraming = errors.New("invalid key framing")

	// ErrWrongCurve is returned when a well-formed key belongs to a
	// different curve than expected.
	ErrWrongCurve = errors.New("key is on a different curve")
)

// Parse decodes a public key from the given encoding and returns its
// canonical raw representation. The point is validated against the curve.
func Parse(curve Curve, data []byte, enc Encoding) ([]byte, error) {
	switch curve {
	case P256:
		return parseP256(data, enc)
	case X25519:
		return parseX25519(data, enc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
}

// Marshal encodes a canonical raw public key into the given encoding.
// The raw bytes are validated before encoding.
func Marshal(curve Curve, raw []byte, enc Encoding) ([]byte, error) {
	switch curve {
	case P256:
		return marshalP256(raw, enc)
	case X25519:
		return marshalX25519(raw, enc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
}

func parseP256(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case Raw:
		if len(data) != P256RawSize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(data), P256RawSize)
		}
		return validateP256Point(append([]byte{uncompressedForm}, data...))
	case X963:
		if len(data) != P256X963Size {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(data), P256X963Size)
		}
		if data[0] != uncompressedForm {
			return nil, fmt.Errorf("%w: point form 0x%02x, only uncompressed (0x04) is supported", ErrInvalidPoint, data[0])
		}
		return validateP256Point(data)
	case DER:
		return parseDER(P256, data)
	case PEM:
		return parsePEM(P256, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

func parseX25519(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case Raw:
		if len(data) != X25519RawSize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(data), X25519RawSize)
		}
		out := make([]byte, X25519RawSize)
		copy(out, data)
		return out, nil
	case X963:
		return nil, fmt.Errorf("%w: X9.63 has no Curve25519 form", ErrUnsupportedEncoding)
	case DER:
		return parseDER(X25519, data)
	case PEM:
		return parsePEM(X25519, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// validateP256Point checks an uncompressed X9.63 point against P-256 and
// returns the raw X||Y bytes.
func validateP256Point(x963 []byte) ([]byte, error) {
	if _, err := ecdh.P256().NewPublicKey(x963); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	raw := make([]byte, P256RawSize)
	copy(raw, x963[1:])
	return raw, nil
}

// parseDER decodes a SubjectPublicKeyInfo structure and checks the key is
// on the expected curve.
func parseDER(curve Curve, data []byte) ([]byte, error) {
	parsed, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFraming, err)
	}

	switch key := parsed.(type) {
	case *ecdsa.PublicKey:
		ecdhKey, err := key.ECDH()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		if curve != P256 || ecdhKey.Curve() != ecdh.P256() {
			return nil, fmt.Errorf("%w: want %s", ErrWrongCurve, curve)
		}
		// Bytes() is the uncompressed X9.63 form; strip the prefix.
		raw := make([]byte, P256RawSize)
		copy(raw, ecdhKey.Bytes()[1:])
		return raw, nil
	case *ecdh.PublicKey:
		if curve != X25519 || key.Curve() != ecdh.X25519() {
			return nil, fmt.Errorf("%w: want %s", ErrWrongCurve, curve)
		}
		raw := make([]byte, X25519RawSize)
		copy(raw, key.Bytes())
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: not an elliptic-curve key", ErrWrongCurve)
	}
}

// parsePEM decodes a "PUBLIC KEY" PEM block and parses the inner DER.
func parsePEM(curve Curve, data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidFraming)
	}
	if block.Type != pemBlockType {
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrInvalidFraming, block.Type)
	}
	return parseDER(curve, block.Bytes)
}

func marshalP256(raw []byte, enc Encoding) ([]byte, error) {
	if len(raw) != P256RawSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(raw), P256RawSize)
	}

	x963 := append([]byte{uncompressedForm}, raw...)
	key, err := ecdh.P256().NewPublicKey(x963)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	switch enc {
	case Raw:
		out := make([]byte, P256RawSize)
		copy(out, raw)
		return out, nil
	case X963:
		return x963, nil
	case DER:
		return marshalDER(key)
	case PEM:
		return marshalPEM(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

func marshalX25519(raw []byte, enc Encoding) ([]byte, error) {
	if len(raw) != X25519RawSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(raw), X25519RawSize)
	}

	key, err := ecdh.X25519().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	switch enc {
	case Raw:
		out := make([]byte, X25519RawSize)
		copy(out, raw)
		return out, nil
	case X963:
		return nil, fmt.Errorf("%w: X9.63 has no Curve25519 form", ErrUnsupportedEncoding)
	case DER:
		return marshalDER(key)
	case PEM:
		return marshalPEM(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

func marshalDER(key *ecdh.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFraming, err)
	}
	return der, nil
}

func marshalPEM(key *ecdh.PublicKey) ([]byte, error) {
	der, err := marshalDER(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemBlockType, Bytes: der}), nil
}

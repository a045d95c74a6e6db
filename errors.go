package sealbox

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrHardwareUnavailable is returned when the key provider's hardware
	// root of trust is absent. Fatal to all key operations.
	ErrHardwareUnavailable = errors.New("hardware key provider unavailable")

	// ErrStorageFailure is returned when persisted key material cannot be
	// read or written.
	ErrStorageFailure = errors.New("key storage failure")

	// ErrKeyNotFound is returned by KeyStorage implementations when no blob
	// exists under the requested tag. The key lifecycle treats it as the
	// trigger to generate a fresh key; any other storage error is fatal.
	ErrKeyNotFound = errors.New("key not found in storage")

	// ErrMalformedKey is returned when a public key encoding is structurally
	// invalid: wrong length, invalid curve point, or broken ASN.1/PEM framing.
	ErrMalformedKey = errors.New("malformed public key")

	// ErrAuthenticationFailed is returned when an AEAD tag does not verify.
	// This covers tampering, a wrong key, and truncated or malformed input.
	// It is a security-relevant rejection and is never retried.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrEncodingFailure is returned when text/Base64 framing is invalid at
	// the convenience-wrapper boundary. Kept separate from cryptographic
	// failures so callers can distinguish transport damage from tampering.
	ErrEncodingFailure = errors.New("invalid text encoding")

	// ErrUnsupportedAlgorithm is returned when an unrecognized AEAD
	// algorithm is requested.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUnsupportedEncoding is returned when a public key encoding does not
	// exist for the key's curve (e.g. X9.63 for Curve25519).
	ErrUnsupportedEncoding = errors.New("unsupported key encoding")

	// ErrInvalidKeySize is returned when a symmetric key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCurveMismatch is returned when a peer public key belongs to a
	// different curve than the local key.
	ErrCurveMismatch = errors.New("public key curve mismatch")
)

// SealboxError is implemented by all typed SDK errors.
type SealboxError interface {
	error
	SealboxError() // marker method
}

// StorageError represents a failure of the KeyStorage collaborator.
type StorageError struct {
	Op  string // "get", "put" or "delete"
	Tag string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("key storage %s %q: %v", e.Op, e.Tag, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// SealboxError implements the SealboxError interface.
func (e *StorageError) SealboxError() {}

// HardwareError represents an absent or failing hardware root of trust.
type HardwareError struct {
	Message string
}

func (e *HardwareError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hardware key provider unavailable: %s", e.Message)
	}
	return "hardware key provider unavailable"
}

// Is implements errors.Is for sentinel error matching.
func (e *HardwareError) Is(target error) bool {
	return target == ErrHardwareUnavailable
}

// SealboxError implements the SealboxError interface.
func (e *HardwareError) SealboxError() {}

// MalformedKeyError represents a structurally invalid public key encoding.
type MalformedKeyError struct {
	Encoding KeyEncoding
	Err      error
}

func (e *MalformedKeyError) Error() string {
	if e.Encoding != "" {
		return fmt.Sprintf("malformed %s public key: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("malformed public key: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedKeyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// SealboxError implements the SealboxError interface.
func (e *MalformedKeyError) SealboxError() {}

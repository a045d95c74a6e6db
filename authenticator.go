package sealbox

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
)

// AuthCodeSize is the size in bytes of an authentication code.
const AuthCodeSize = sha512.Size

// ComputeAuthCode computes an HMAC-SHA512 authentication code over message
// using the symmetric key. The code is deterministic for a fixed (message,
// key) pair and carries no confidentiality.
func ComputeAuthCode(message, key []byte) ([]byte, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), SymmetricKeySize)
	}

	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// VerifyAuthCode recomputes the authentication code for message and compares
// it to code in constant time. It returns false, never an error, on any
// mismatch — including a wrong-length or empty code, which is treated as an
// ordinary failed verification rather than a distinct validation error.
func VerifyAuthCode(code, message, key []byte) bool {
	expected, err := ComputeAuthCode(message, key)
	if err != nil {
		return false
	}
	return hmac.Equal(code, expected)
}

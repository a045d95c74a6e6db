package sealbox

import (
	"encoding/base64"
	"fmt"
)

// Text convenience wrappers around the byte-oriented API. Base64 framing
// errors surface as ErrEncodingFailure, distinct from cryptographic
// failures, so callers can tell transport damage from tampering.

// ToBase64 encodes bytes to standard base64 with padding.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 (with padding) to bytes.
func FromBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return data, nil
}

// SealToString seals plaintext and returns the sealed message as standard
// base64 text.
func (c *Cipher) SealToString(plaintext, key []byte) (string, error) {
	sealed, err := c.Seal(plaintext, key)
	if err != nil {
		return "", err
	}
	return ToBase64(sealed), nil
}

// OpenFromString decodes a base64 sealed message and opens it. Invalid
// base64 framing fails with ErrEncodingFailure; a valid frame with a bad tag
// fails with ErrAuthenticationFailed.
func (c *Cipher) OpenFromString(sealed string, key []byte) ([]byte, error) {
	blob, err := FromBase64(sealed)
	if err != nil {
		return nil, err
	}
	return c.Open(blob, key)
}

// ComputeAuthCodeString computes an authentication code and returns it as
// standard base64 text.
func ComputeAuthCodeString(message, key []byte) (string, error) {
	code, err := ComputeAuthCode(message, key)
	if err != nil {
		return "", err
	}
	return ToBase64(code), nil
}

// VerifyAuthCodeString decodes a base64 authentication code and verifies it.
// Invalid base64 framing fails with ErrEncodingFailure; a well-framed but
// wrong code returns (false, nil).
func VerifyAuthCodeString(code string, message, key []byte) (bool, error) {
	decoded, err := FromBase64(code)
	if err != nil {
		return false, err
	}
	return VerifyAuthCode(decoded, message, key), nil
}

package sealbox

import (
	"bytes"
	"errors"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0xfe, 0xff}

	decoded, err := FromBase64(ToBase64(data))
	if err != nil {
		t.Fatalf("FromBase64() error = %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("round trip = %v, want %v", decoded, data)
	}
}

func TestFromBase64_Invalid(t *testing.T) {
	if _, err := FromBase64("not base64!!!"); !errors.Is(err, ErrEncodingFailure) {
		t.Errorf("expected ErrEncodingFailure, got %v", err)
	}
}

func TestCipher_SealOpenString(t *testing.T) {
	c, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	key := testKey(t)

	sealed, err := c.SealToString([]byte("hello"), key)
	if err != nil {
		t.Fatalf("SealToString() error = %v", err)
	}

	opened, err := c.OpenFromString(sealed, key)
	if err != nil {
		t.Fatalf("OpenFromString() error = %v", err)
	}
	if string(opened) != "hello" {
		t.Errorf("opened = %q, want %q", opened, "hello")
	}
}

// The text API keeps failure kinds distinct: broken framing is an encoding
// failure, a valid frame with a bad tag is an authentication failure.
func TestCipher_OpenFromString_DistinctFailures(t *testing.T) {
	c, err := NewCipher(AES256GCM)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	key := testKey(t)

	_, err = c.OpenFromString("not base64!!!", key)
	if !errors.Is(err, ErrEncodingFailure) {
		t.Errorf("expected ErrEncodingFailure, got %v", err)
	}
	if errors.Is(err, ErrAuthenticationFailed) {
		t.Error("encoding failure also matches ErrAuthenticationFailed")
	}

	tampered := ToBase64(make([]byte, NonceSize+TagSize+5))
	_, err = c.OpenFromString(tampered, key)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthCodeString(t *testing.T) {
	key := testKey(t)
	message := []byte("hello")

	code, err := ComputeAuthCodeString(message, key)
	if err != nil {
		t.Fatalf("ComputeAuthCodeString() error = %v", err)
	}

	ok, err := VerifyAuthCodeString(code, message, key)
	if err != nil {
		t.Fatalf("VerifyAuthCodeString() error = %v", err)
	}
	if !ok {
		t.Error("VerifyAuthCodeString() = false for valid code")
	}

	ok, err = VerifyAuthCodeString(code, []byte("hell"), key)
	if err != nil {
		t.Fatalf("VerifyAuthCodeString() error = %v", err)
	}
	if ok {
		t.Error("VerifyAuthCodeString() = true for truncated message")
	}

	if _, err := VerifyAuthCodeString("not base64!!!", message, key); !errors.Is(err, ErrEncodingFailure) {
		t.Errorf("expected ErrEncodingFailure, got %v", err)
	}
}

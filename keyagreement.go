package sealbox

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// SymmetricKeySize is the size in bytes of a derived symmetric key.
const SymmetricKeySize = 32

// keyState tracks the local key lifecycle. The only valid transitions are
// Absent -> Creating -> Present (first use) and Present -> Absent (deletion).
type keyState int

const (
	keyAbsent keyState = iota
	keyCreating
	keyPresent
)

// KeyAgreement owns the local private key's lifecycle and derives symmetric
// keys from peer public keys via ECDH and HKDF-SHA-512.
//
// The local key is created through the provider on first use and its
// reference persisted to storage; subsequent uses load the same key. The
// create-if-absent path is guarded by a mutex so that concurrent first use
// creates exactly one key. Once the key exists, derivation is pure
// computation and safe for concurrent use.
type KeyAgreement struct {
	storage  KeyStorage
	provider HardwareKeyProvider
	tag      string

	mu     sync.Mutex
	state  keyState
	handle PrivateKeyHandle
}

// NewKeyAgreement returns a KeyAgreement backed by the given storage and key
// provider. No key is created or loaded until first use.
func NewKeyAgreement(storage KeyStorage, provider HardwareKeyProvider, opts ...Option) (*KeyAgreement, error) {
	if storage == nil {
		return nil, errors.New("storage is required")
	}
	if provider == nil {
		return nil, errors.New("key provider is required")
	}

	cfg := agreementConfig{storageTag: defaultStorageTag}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &KeyAgreement{
		storage:  storage,
		provider: provider,
		tag:      cfg.storageTag,
	}, nil
}

// Curve returns the curve of the local key pair.
func (ka *KeyAgreement) Curve() Curve {
	return ka.provider.Curve()
}

// LocalPublicKey returns the caller's own public key in the requested
// encoding, creating the local key pair on first use.
func (ka *KeyAgreement) LocalPublicKey(encoding KeyEncoding) ([]byte, error) {
	handle, err := ka.localHandle()
	if err != nil {
		return nil, err
	}
	return marshalPublicKey(ka.provider.Curve(), handle.PublicKey(), encoding)
}

// ParsePublicKey validates and decodes a peer's public key from any of the
// supported encodings. Points not on the provider's curve are rejected with
// ErrMalformedKey.
func (ka *KeyAgreement) ParsePublicKey(data []byte, encoding KeyEncoding) (*PublicKey, error) {
	return parsePublicKey(ka.provider.Curve(), data, encoding)
}

// DeriveSymmetricKey performs ECDH between the local private key and the
// peer's public key, then expands the shared secret into a 32-byte symmetric
// key via HKDF-SHA-512 with the given salt and empty context info.
//
// Both parties computing this with swapped local/peer roles and the same
// salt obtain bit-identical keys. The salt is not secret but must be agreed
// out of band. The derived key is ephemeral: it is never persisted and each
// call re-derives from scratch.
func (ka *KeyAgreement) DeriveSymmetricKey(peer *PublicKey, salt []byte) ([]byte, error) {
	if peer == nil {
		return nil, &MalformedKeyError{Err: errors.New("nil public key")}
	}
	if peer.curve != ka.provider.Curve() {
		return nil, fmt.Errorf("%w: peer key is %s, local key is %s",
			ErrCurveMismatch, peer.curve, ka.provider.Curve())
	}

	handle, err := ka.localHandle()
	if err != nil {
		return nil, err
	}

	secret, err := handle.SharedSecret(peer.raw)
	if err != nil {
		return nil, &MalformedKeyError{Err: err}
	}

	return deriveKey(secret, salt)
}

// DeleteLocalKey removes the persisted key reference and forgets the loaded
// handle. The next operation that needs the local key generates a fresh one,
// changing the local identity. Deleting when no key exists is a no-op.
func (ka *KeyAgreement) DeleteLocalKey() error {
	ka.mu.Lock()
	defer ka.mu.Unlock()

	if err := ka.storage.Delete(ka.tag); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return &StorageError{Op: "delete", Tag: ka.tag, Err: err}
	}

	ka.handle = nil
	ka.state = keyAbsent
	return nil
}

// localHandle returns the local private key handle, running the
// create-if-absent lifecycle under the mutex: load the persisted reference
// if one exists, otherwise generate a key and persist its reference before
// any caller observes it.
func (ka *KeyAgreement) localHandle() (PrivateKeyHandle, error) {
	if !ka.provider.Available() {
		return nil, &HardwareError{Message: "no root of trust present"}
	}

	ka.mu.Lock()
	defer ka.mu.Unlock()

	if ka.state == keyPresent {
		return ka.handle, nil
	}

	ka.state = keyCreating
	handle, err := ka.loadOrCreate()
	if err != nil {
		ka.state = keyAbsent
		return nil, err
	}

	ka.handle = handle
	ka.state = keyPresent
	return handle, nil
}

func (ka *KeyAgreement) loadOrCreate() (PrivateKeyHandle, error) {
	ref, err := ka.storage.Get(ka.tag)
	switch {
	case err == nil:
		handle, err := ka.provider.Load(ref)
		if err != nil {
			return nil, &StorageError{Op: "get", Tag: ka.tag,
				Err: fmt.Errorf("persisted key reference cannot be loaded: %w", err)}
		}
		return handle, nil

	case errors.Is(err, ErrKeyNotFound):
		handle, err := ka.provider.Generate()
		if err != nil {
			return nil, &HardwareError{Message: err.Error()}
		}
		if err := ka.storage.Put(ka.tag, handle.Ref()); err != nil {
			return nil, &StorageError{Op: "put", Tag: ka.tag, Err: err}
		}
		return handle, nil

	default:
		return nil, &StorageError{Op: "get", Tag: ka.tag, Err: err}
	}
}

// deriveKey expands a shared secret into a symmetric key using HKDF-SHA-512
// with empty context info. An empty salt falls back to the RFC 5869 default
// of a zero-filled salt of hash length.
func deriveKey(secret, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, nil)
	key := make([]byte, SymmetricKeySize)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// Package sealbox provides secure point-to-point messaging primitives for
// two parties who each hold a long-lived asymmetric key pair.
//
// The package implements elliptic-curve key agreement, HKDF key derivation,
// authenticated encryption, and keyed message authentication. A shared
// symmetric key is derived from the local private key and the peer's public
// key without a secret ever crossing the wire.
//
// Basic usage:
//
//	provider, err := sealbox.NewSoftwareKeyProvider(sealbox.CurveP256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	agreement, err := sealbox.NewKeyAgreement(sealbox.NewMemoryStorage(), provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Publish our public key to the peer.
//	pub, err := agreement.LocalPublicKey(sealbox.EncodingPEM)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Derive a symmetric key from the peer's public key and a shared salt.
//	peer, err := agreement.ParsePublicKey(peerBytes, sealbox.EncodingPEM)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	key, err := agreement.DeriveSymmetricKey(peer, []byte("agreed-salt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Seal and open messages with the derived key.
//	cipher, _ := sealbox.NewCipher(sealbox.AES256GCM)
//	sealed, err := cipher.Seal([]byte("hello"), key)
//
// # Security Model
//
// The package provides:
//
//   - Confidentiality: sealed messages can only be opened by a party holding
//     one of the two private keys and the agreed salt.
//   - Integrity: any alteration of a sealed message or authenticated message
//     causes verification to fail.
//   - No key transport: the symmetric key is derived independently by both
//     parties via ECDH; it is never transmitted or persisted.
//
// It does NOT provide peer authentication: the caller is solely responsible
// for verifying that a public key belongs to the intended peer before
// deriving keys from it. It also does not provide forward secrecy; the same
// key pair and salt always derive the same symmetric key.
//
// # Key Management
//
// Private keys are owned by a [HardwareKeyProvider] and referenced through
// opaque handles; the raw scalar of a hardware-backed key never leaves the
// provider. [NewSoftwareKeyProvider] returns an in-process fallback for
// platforms without a hardware root of trust. Key references are persisted
// through a [KeyStorage], created on first use and destroyed only by
// [KeyAgreement.DeleteLocalKey] (after which the next use generates a fresh
// key and the local identity changes).
package sealbox

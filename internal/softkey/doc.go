// Package softkey implements in-process software key providers for platforms
// without a hardware root of trust.
//
// A software key is held in process memory and, unlike a hardware-backed key,
// is exportable: its storage reference blob contains the private scalar
// itself. The package supports NIST P-256 (via crypto/ecdh) and Curve25519
// (via the CIRCL X25519 implementation).
//
// Software keys satisfy the same contract as hardware handles: an opaque
// reference for persistence, the raw public key, and a Diffie-Hellman shared
// secret computation.
package softkey

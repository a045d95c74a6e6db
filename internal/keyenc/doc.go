// Package keyenc converts elliptic-curve public keys between the four wire
// encodings used by the SDK: raw (X||Y concatenation), X9.63 (point-form
// prefix || X || Y), DER (SubjectPublicKeyInfo), and PEM (Base64-wrapped DER).
//
// All encodings are lossless: parsing any of them yields the same canonical
// raw representation, and marshaling that raw representation reproduces the
// original bytes. Parsing validates structure strictly — wrong lengths,
// points not on the expected curve, and broken ASN.1/PEM framing are all
// rejected.
//
// The canonical raw form is 64 bytes (32-byte X || 32-byte Y) for P-256 and
// 32 bytes for Curve25519. Curve25519 has no X9.63 form; requesting it
// returns [ErrUnsupportedEncoding].
package keyenc

package p256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/vocdoni/dreip/group"
)

// signatureSize is the fixed wire width of a signature: r || s, each a
// 32-byte big-endian P-256 scalar. This is deliberately not ASN.1 DER,
// since a fixed-size encoding is part of the wire contract (see
// BallotProof/VoteProof hashing, which concatenates canonical field
// encodings).
const signatureSize = 2 * scalarSize

// Signature is a fixed-size ECDSA over P-256/SHA-256 signature.
type Signature struct {
	R, S *big.Int
}

var _ group.Signature = Signature{}

func (s Signature) Bytes() []byte {
	b := make([]byte, signatureSize)
	s.R.FillBytes(b[:scalarSize])
	s.S.FillBytes(b[scalarSize:])
	return b
}

func signatureFromBytes(b []byte) (Signature, error) {
	if len(b) != signatureSize {
		return Signature{}, fmt.Errorf("p256: signature must be %d bytes, got %d", signatureSize, len(b))
	}
	r := new(big.Int).SetBytes(b[:scalarSize])
	s := new(big.Int).SetBytes(b[scalarSize:])
	return Signature{R: r, S: s}, nil
}

// PrivateKey signs messages using ECDSA over P-256 with SHA-256.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

var _ group.PrivateKey = (*PrivateKey)(nil)

func (k *PrivateKey) Sign(msg []byte) (group.Signature, error) {
	digest := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, k.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("p256: sign: %w", err)
	}
	return Signature{R: r, S: s}, nil
}

func (k *PrivateKey) Bytes() []byte {
	b := make([]byte, scalarSize)
	k.key.D.FillBytes(b)
	return b
}

// Erase zeroizes the private scalar. Callers must call this once the
// key is no longer needed, since Go has no destructors and the signing
// key must not outlive the election that owns it.
func (k *PrivateKey) Erase() {
	if k == nil || k.key == nil || k.key.D == nil {
		return
	}
	words := k.key.D.Bits()
	for i := range words {
		words[i] = 0
	}
	k.key.D.SetInt64(0)
}

func privateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != scalarSize {
		return nil, fmt.Errorf("p256: private key must be %d bytes, got %d", scalarSize, len(b))
	}
	d := new(big.Int).SetBytes(b)
	pub := &ecdsa.PrivateKey{PublicKey: ecdsa.PublicKey{Curve: curve}}
	pub.D = d
	pub.PublicKey.X, pub.PublicKey.Y = curve.ScalarBaseMult(d.Bytes())
	return &PrivateKey{key: pub}, nil
}

// PublicKey verifies ECDSA over P-256/SHA-256 signatures.
type PublicKey struct {
	key *ecdsa.PublicKey
}

var _ group.PublicKey = (*PublicKey)(nil)

func (k *PublicKey) Verify(msg []byte, sig group.Signature) bool {
	s, ok := sig.(Signature)
	if !ok {
		return false
	}
	digest := sha256.Sum256(msg)
	return ecdsa.Verify(k.key, digest[:], s.R, s.S)
}

func (k *PublicKey) Bytes() []byte {
	return elliptic.MarshalCompressed(curve, k.key.X, k.key.Y)
}

func publicKeyFromBytes(b []byte) (*PublicKey, error) {
	x, y := elliptic.UnmarshalCompressed(curve, b)
	if x == nil {
		return nil, fmt.Errorf("p256: invalid compressed public key encoding")
	}
	return &PublicKey{key: &ecdsa.PublicKey{Curve: curve, X: x, Y: y}}, nil
}

func newKeyPair(rng io.Reader) (*PrivateKey, *PublicKey, error) {
	key, err := ecdsa.GenerateKey(curve, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("p256: key generation: %w", err)
	}
	return &PrivateKey{key: key}, &PublicKey{key: &key.PublicKey}, nil
}

// Package group defines the abstract prime-order cyclic group that the
// DRE-ip protocol is built on. It lists exactly the operations the rest
// of this module needs, so that the protocol routines in proof and
// dreip never depend on a specific curve implementation directly.
package group

import "io"

// Point is an element of the cyclic group (additive notation).
type Point interface {
	// Add returns the receiver added to other.
	Add(other Point) Point
	// Sub returns the receiver with other's inverse added.
	Sub(other Point) Point
	// ScalarMult returns the receiver multiplied by s.
	ScalarMult(s Scalar) Point
	// IsIdentity reports whether this is the group's identity element.
	IsIdentity() bool
	// Equal reports whether two points represent the same group element.
	Equal(other Point) bool
	// Bytes returns the canonical wire encoding of the point.
	Bytes() []byte
}

// Scalar is an element of the group's scalar field (integers mod the
// group order).
type Scalar interface {
	Add(other Scalar) Scalar
	Sub(other Scalar) Scalar
	Mul(other Scalar) Scalar
	Equal(other Scalar) bool
	IsZero() bool
	// Bytes returns the canonical wire encoding of the scalar.
	Bytes() []byte
}

// Signature is an opaque, serializable authentication tag produced by a
// PrivateKey and checked by the matching PublicKey.
type Signature interface {
	Bytes() []byte
}

// PrivateKey signs messages. It is never part of a published
// ElectionResults; callers should call a concrete implementation's
// Erase method (where available) once signing is no longer needed.
type PrivateKey interface {
	Sign(msg []byte) (Signature, error)
	Bytes() []byte
}

// PublicKey verifies signatures produced by the matching PrivateKey.
type PublicKey interface {
	Verify(msg []byte, sig Signature) bool
	Bytes() []byte
}

// Eraser is implemented by PrivateKeys and Scalars that hold
// zeroizable secret material. Not every Group implementation needs
// mutable secret state, so callers that want to erase a key or scalar
// check for this via a type assertion rather than it being part of the
// PrivateKey or Scalar interface.
type Eraser interface {
	Erase()
}

// Group is a concrete, prime-order cyclic group together with the
// hashing and key-generation primitives DRE-ip needs. Every protocol
// routine in this module takes a Group (and the Points/Scalars it
// produced) as a parameter; there are no package-level globals.
type Group interface {
	// Identity returns the group's identity element (point at infinity).
	Identity() Point
	// ScalarZero and ScalarOne return the additive and multiplicative
	// identities of the scalar field.
	ScalarZero() Scalar
	ScalarOne() Scalar
	// RandomScalar draws a uniformly random scalar using rng.
	RandomScalar(rng io.Reader) (Scalar, error)

	// PointFromBytes decodes the canonical wire form of a point.
	PointFromBytes(b []byte) (Point, error)
	// ScalarFromBytes decodes the canonical wire form of a scalar. It
	// rejects values greater than or equal to the group order.
	ScalarFromBytes(b []byte) (Scalar, error)
	// SignatureFromBytes decodes the canonical wire form of a signature.
	SignatureFromBytes(b []byte) (Signature, error)
	// PublicKeyFromBytes decodes the canonical wire form of a public key.
	PublicKeyFromBytes(b []byte) (PublicKey, error)

	// HashToPoint maps the concatenation of data to a point via an
	// indifferentiable hash-to-curve construction with a fixed
	// domain-separation tag that binds it to this protocol.
	HashToPoint(data ...[]byte) Point
	// HashToScalar maps the concatenation of data to a scalar via the
	// same construction, projected into the scalar field.
	HashToScalar(data ...[]byte) Scalar

	// NewGenerators returns (g1, g2) for a fresh election: g1 is the
	// group's standard generator, g2 = HashToPoint(uniqueBytes...).
	// uniqueBytes must never be reused across elections.
	NewGenerators(uniqueBytes ...[]byte) (g1, g2 Point)
	// NewKeys generates a fresh signing keypair using rng.
	NewKeys(rng io.Reader) (PrivateKey, PublicKey, error)
}

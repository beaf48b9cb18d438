// Package p256 instantiates the group package's interfaces on the NIST
// P-256 elliptic curve (secp256r1), following RFC 9380 for
// hash-to-curve/hash-to-scalar and SEC1 for point encoding.
package p256

import (
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/vocdoni/dreip/group"
)

var (
	curve       = elliptic.P256()
	curveParams = curve.Params()
	// curveA is P-256's Weierstrass "A" coefficient, -3 mod p.
	curveA = new(big.Int).Sub(curveParams.P, big.NewInt(3))
)

// Group is the P-256 instantiation of group.Group.
type Group struct{}

var _ group.Group = Group{}

// New returns the P-256 group instance. It carries no state of its own;
// every election's generators and keys are produced fresh by its
// methods.
func New() Group {
	return Group{}
}

func (Group) Identity() group.Point {
	return newIdentity()
}

func (Group) ScalarZero() group.Scalar {
	return scalarFromUint64(0)
}

func (Group) ScalarOne() group.Scalar {
	return scalarFromUint64(1)
}

func (Group) RandomScalar(rng io.Reader) (group.Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	v, err := rand.Int(rng, curveParams.N)
	if err != nil {
		return nil, err
	}
	return &scalar{v: v}, nil
}

func (Group) PointFromBytes(b []byte) (group.Point, error) {
	return pointFromBytes(b)
}

func (Group) ScalarFromBytes(b []byte) (group.Scalar, error) {
	return scalarFromBytes(b)
}

func (Group) SignatureFromBytes(b []byte) (group.Signature, error) {
	return signatureFromBytes(b)
}

func (Group) PublicKeyFromBytes(b []byte) (group.PublicKey, error) {
	return publicKeyFromBytes(b)
}

func (Group) HashToPoint(data ...[]byte) group.Point {
	return hashToPoint(data...)
}

func (Group) HashToScalar(data ...[]byte) group.Scalar {
	return hashToScalar(data...)
}

// NewGenerators returns g1 as the curve's standard generator and g2 as
// HashToPoint(uniqueBytes...), so that g2's discrete log with respect
// to g1 is unknown to every participant, including the election creator.
func (g Group) NewGenerators(uniqueBytes ...[]byte) (group.Point, group.Point) {
	g1 := &point{x: new(big.Int).Set(curveParams.Gx), y: new(big.Int).Set(curveParams.Gy)}
	g2 := hashToPoint(uniqueBytes...)
	return g1, g2
}

func (g Group) NewKeys(rng io.Reader) (group.PrivateKey, group.PublicKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	return newKeyPair(rng)
}

package p256

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/vocdoni/dreip/group"
)

// point is an affine NIST P-256 point. x == nil represents the identity
// element (the point at infinity); curve arithmetic never produces a
// nil y without a nil x.
type point struct {
	x, y *big.Int
}

var _ group.Point = (*point)(nil)

func newIdentity() *point {
	return &point{}
}

func newAffine(x, y *big.Int) *point {
	return &point{x: x, y: y}
}

func (p *point) Add(other group.Point) group.Point {
	o := other.(*point)
	if p.IsIdentity() {
		return &point{x: o.x, y: o.y}
	}
	if o.IsIdentity() {
		return &point{x: p.x, y: p.y}
	}
	x, y := curve.Add(p.x, p.y, o.x, o.y)
	if x.Sign() == 0 && y.Sign() == 0 {
		// Add returns (0,0) when the inputs are inverses of one another.
		return newIdentity()
	}
	return &point{x: x, y: y}
}

func (p *point) Sub(other group.Point) group.Point {
	return p.Add(other.(*point).Neg())
}

// Neg returns the additive inverse of p.
func (p *point) Neg() *point {
	if p.IsIdentity() {
		return newIdentity()
	}
	negY := new(big.Int).Sub(curveParams.P, p.y)
	negY.Mod(negY, curveParams.P)
	return &point{x: new(big.Int).Set(p.x), y: negY}
}

func (p *point) ScalarMult(s group.Scalar) group.Point {
	sc := s.(*scalar)
	if p.IsIdentity() || sc.v.Sign() == 0 {
		return newIdentity()
	}
	x, y := curve.ScalarMult(p.x, p.y, sc.v.Bytes())
	if x.Sign() == 0 && y.Sign() == 0 {
		return newIdentity()
	}
	return &point{x: x, y: y}
}

func (p *point) IsIdentity() bool {
	return p.x == nil
}

func (p *point) Equal(other group.Point) bool {
	o, ok := other.(*point)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

// Bytes returns the SEC1-compressed encoding: 33 bytes for an affine
// point, or the single byte 0x00 for the identity.
func (p *point) Bytes() []byte {
	if p.IsIdentity() {
		return []byte{0x00}
	}
	return elliptic.MarshalCompressed(curve, p.x, p.y)
}

func pointFromBytes(b []byte) (*point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return newIdentity(), nil
	}
	x, y := elliptic.UnmarshalCompressed(curve, b)
	if x == nil {
		return nil, fmt.Errorf("p256: invalid compressed point encoding")
	}
	return &point{x: x, y: y}, nil
}

func (p *point) String() string {
	if p.IsIdentity() {
		return "Point(identity)"
	}
	return fmt.Sprintf("Point(%x)", p.Bytes())
}

package p256

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/dreip/group"
)

// scalarSize is the fixed wire width of a canonical scalar: 32 bytes,
// big-endian, reduced mod the curve order.
const scalarSize = 32

// scalar is an element of Z_n, where n is the P-256 group order.
type scalar struct {
	v *big.Int
}

var _ group.Scalar = (*scalar)(nil)

func newScalar(v *big.Int) *scalar {
	r := new(big.Int).Mod(v, curveParams.N)
	return &scalar{v: r}
}

func scalarFromUint64(u uint64) *scalar {
	return newScalar(new(big.Int).SetUint64(u))
}

func (s *scalar) Add(other group.Scalar) group.Scalar {
	o := other.(*scalar)
	return newScalar(new(big.Int).Add(s.v, o.v))
}

func (s *scalar) Sub(other group.Scalar) group.Scalar {
	o := other.(*scalar)
	return newScalar(new(big.Int).Sub(s.v, o.v))
}

func (s *scalar) Mul(other group.Scalar) group.Scalar {
	o := other.(*scalar)
	return newScalar(new(big.Int).Mul(s.v, o.v))
}

func (s *scalar) Equal(other group.Scalar) bool {
	o, ok := other.(*scalar)
	if !ok {
		return false
	}
	return s.v.Cmp(o.v) == 0
}

func (s *scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s *scalar) Bytes() []byte {
	b := make([]byte, scalarSize)
	s.v.FillBytes(b)
	return b
}

func scalarFromBytes(b []byte) (*scalar, error) {
	if len(b) != scalarSize {
		return nil, fmt.Errorf("p256: scalar must be %d bytes, got %d", scalarSize, len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(curveParams.N) >= 0 {
		return nil, fmt.Errorf("p256: scalar value is not reduced mod the curve order")
	}
	return &scalar{v: v}, nil
}

// zeroize overwrites the scalar's backing words, best-effort, so that
// secret values do not linger in memory after a Vote is confirmed.
func (s *scalar) zeroize() {
	if s == nil || s.v == nil {
		return
	}
	words := s.v.Bits()
	for i := range words {
		words[i] = 0
	}
	s.v.SetInt64(0)
}

// Erase implements group.Eraser, letting callers outside this package
// zeroize a scalar's backing storage through the abstract interface.
func (s *scalar) Erase() {
	s.zeroize()
}

var _ group.Eraser = (*scalar)(nil)

func (s *scalar) String() string {
	return fmt.Sprintf("Scalar(%x)", s.Bytes())
}

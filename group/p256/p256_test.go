package p256

import (
	"crypto/rand"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPointSerializationRoundTrip(t *testing.T) {
	c := qt.New(t)
	g := New()

	g1, g2 := g.NewGenerators([]byte("test-election-1"))
	for _, p := range []*point{g1.(*point), g2.(*point)} {
		decoded, err := pointFromBytes(p.Bytes())
		c.Assert(err, qt.IsNil)
		c.Assert(decoded.Equal(p), qt.IsTrue)
	}

	id := newIdentity()
	c.Assert(id.Bytes(), qt.DeepEquals, []byte{0x00})
	decodedID, err := pointFromBytes(id.Bytes())
	c.Assert(err, qt.IsNil)
	c.Assert(decodedID.IsIdentity(), qt.IsTrue)
}

func TestScalarSerializationRoundTrip(t *testing.T) {
	c := qt.New(t)
	g := New()

	s, err := g.RandomScalar(rand.Reader)
	c.Assert(err, qt.IsNil)

	decoded, err := scalarFromBytes(s.Bytes())
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.Equal(s), qt.IsTrue)

	_, err = scalarFromBytes(make([]byte, 31))
	c.Assert(err, qt.Not(qt.IsNil))

	tooBig := make([]byte, scalarSize)
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	_, err = scalarFromBytes(tooBig)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	c := qt.New(t)
	g := New()

	priv, pub, err := g.NewKeys(rand.Reader)
	c.Assert(err, qt.IsNil)

	msg := []byte("the quick brown fox")
	sig, err := priv.Sign(msg)
	c.Assert(err, qt.IsNil)
	c.Assert(pub.Verify(msg, sig), qt.IsTrue)
	c.Assert(pub.Verify([]byte("tampered"), sig), qt.IsFalse)

	sigBytes := sig.Bytes()
	c.Assert(len(sigBytes), qt.Equals, signatureSize)

	decodedSig, err := signatureFromBytes(sigBytes)
	c.Assert(err, qt.IsNil)
	c.Assert(pub.Verify(msg, decodedSig), qt.IsTrue)
}

func TestPublicKeyRoundTrip(t *testing.T) {
	c := qt.New(t)
	g := New()

	_, pub, err := g.NewKeys(rand.Reader)
	c.Assert(err, qt.IsNil)

	decoded, err := g.PublicKeyFromBytes(pub.Bytes())
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.Bytes(), qt.DeepEquals, pub.Bytes())
}

func TestHashToPointIsDeterministicAndDomainSeparated(t *testing.T) {
	c := qt.New(t)

	p1 := hashToPoint([]byte("election-alpha"))
	p2 := hashToPoint([]byte("election-alpha"))
	c.Assert(p1.Equal(p2), qt.IsTrue)

	p3 := hashToPoint([]byte("election-beta"))
	c.Assert(p1.Equal(p3), qt.IsFalse)

	c.Assert(p1.IsIdentity(), qt.IsFalse)

	// The same input under a tag altered in one byte maps elsewhere.
	us := hashToFieldP([]byte("election-alpha"), "CURVE_XMD:SHA-256:DREIQ", 2)
	p4 := mapToCurveSSWU(us[0]).Add(mapToCurveSSWU(us[1]))
	c.Assert(p1.Equal(p4), qt.IsFalse)
}

func TestHashToScalarIsDeterministicAndDomainSeparated(t *testing.T) {
	c := qt.New(t)

	s1 := hashToScalar([]byte("ballot-1"), []byte("candidate-a"))
	s2 := hashToScalar([]byte("ballot-1"), []byte("candidate-a"))
	c.Assert(s1.Equal(s2), qt.IsTrue)

	s3 := hashToScalar([]byte("ballot-1"), []byte("candidate-b"))
	c.Assert(s1.Equal(s3), qt.IsFalse)

	// The same input under a tag altered in one byte maps elsewhere.
	altered := expandMessageXMD([]byte("ballot-1candidate-a"), "CURVE_XMD:SHA-256:DREIQ", fieldElementSize)
	s4 := newScalar(new(big.Int).SetBytes(altered))
	c.Assert(s1.Equal(s4), qt.IsFalse)
}

func TestGeneratorsAreDistinctAndNonIdentity(t *testing.T) {
	c := qt.New(t)
	g := New()

	g1, g2 := g.NewGenerators([]byte("election-gamma"))
	c.Assert(g1.IsIdentity(), qt.IsFalse)
	c.Assert(g2.IsIdentity(), qt.IsFalse)
	c.Assert(g1.Equal(g2), qt.IsFalse)
}

func TestScalarEraseZeroizes(t *testing.T) {
	c := qt.New(t)
	g := New()

	s, err := g.RandomScalar(rand.Reader)
	c.Assert(err, qt.IsNil)
	c.Assert(s.IsZero(), qt.IsFalse)

	s.(*scalar).Erase()
	c.Assert(s.IsZero(), qt.IsTrue)
}

package proof

import (
	"io"

	"github.com/vocdoni/dreip/group"
)

// BallotProof proves that the sum of a ballot's vote randomness equals
// rSum, which is what lets a verifier confirm the ballot encodes
// exactly one yes vote without learning which candidate it was for.
type BallotProof struct {
	A, B     group.Point
	Response group.Scalar
}

// NewBallotProof builds the proof for a ballot whose votes' secret
// randomness sums to rSum.
func NewBallotProof(rng io.Reader, g group.Group, g1, g2 group.Point, rSum group.Scalar, ballotID []byte) (*BallotProof, error) {
	rho, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	a := g1.ScalarMult(rho)
	b := g2.ScalarMult(rho)

	challenge := g.HashToScalar(g1.Bytes(), g2.Bytes(), a.Bytes(), b.Bytes(), ballotID)
	response := rho.Add(challenge.Mul(rSum))

	return &BallotProof{A: a, B: b, Response: response}, nil
}

// Verify checks the proof against the ballot's aggregate commitments:
// zSum = sum(vote.Z) and rSumPoint = sum(vote.R) across all of its
// votes (rSumPoint is g2*r_sum, not the scalar r_sum itself).
func (p *BallotProof) Verify(g group.Group, g1, g2 group.Point, zSum, rSumPoint group.Point, ballotID []byte) bool {
	challenge := g.HashToScalar(g1.Bytes(), g2.Bytes(), p.A.Bytes(), p.B.Bytes(), ballotID)

	lhs1 := g1.ScalarMult(p.Response)
	rhs1 := p.A.Add(zSum.Sub(g1).ScalarMult(challenge))
	if !lhs1.Equal(rhs1) {
		return false
	}

	lhs2 := g2.ScalarMult(p.Response)
	rhs2 := p.B.Add(rSumPoint.ScalarMult(challenge))
	return lhs2.Equal(rhs2)
}

// Bytes returns the canonical byte sequence a || b || response.
func (p *BallotProof) Bytes() []byte {
	out := make([]byte, 0, 2*33+32)
	out = append(out, p.A.Bytes()...)
	out = append(out, p.B.Bytes()...)
	out = append(out, p.Response.Bytes()...)
	return out
}

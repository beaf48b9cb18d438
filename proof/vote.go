// Package proof implements the two non-interactive zero-knowledge
// proofs DRE-ip needs: VoteProof, a disjunctive proof that a vote's
// plaintext is 0 or 1, and BallotProof, a proof that a ballot's votes
// sum to exactly one yes. Both are Chaum-Pedersen-style sigma protocols
// made non-interactive via Fiat-Shamir.
package proof

import (
	"io"

	"github.com/vocdoni/dreip/group"
)

// VoteProof proves, without revealing which, that the vote it is
// attached to encodes v=0 or v=1. Index 1 always labels the "v=0"
// sub-proof and index 2 the "v=1" sub-proof, regardless of which one
// was the genuine proof at construction time.
type VoteProof struct {
	C1, C2 group.Scalar
	R1, R2 group.Scalar
}

// NewVoteProof builds a VoteProof for a vote with secret randomness r
// and plaintext v, public commitments Z = g1*(r+v) and R = g2*r. The
// ballotID/candidateID pair must be globally unique within the election
// the proof is later verified against; they are hashed into the
// Fiat-Shamir challenge but are not validated here.
//
// This function does not check that Z and R were actually computed
// from r and v: if the caller passes inconsistent inputs, it silently
// produces an invalid proof rather than erroring, mirroring the
// source's unchecked construction contract.
func NewVoteProof(
	rng io.Reader,
	g group.Group,
	g1, g2 group.Point,
	r group.Scalar,
	v bool,
	z, R group.Point,
	ballotID, candidateID []byte,
) (*VoteProof, error) {
	rho, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	genuineA := g1.ScalarMult(rho)
	genuineB := g2.ScalarMult(rho)

	fakeResponse, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	fakeChallenge, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	var fakeA group.Point
	if v {
		// Fake the v=0 branch, since v is really 1.
		fakeA = g1.ScalarMult(fakeResponse).Add(z.ScalarMult(fakeChallenge))
	} else {
		// Fake the v=1 branch, since v is really 0.
		fakeA = g1.ScalarMult(fakeResponse).Add(z.Sub(g1).ScalarMult(fakeChallenge))
	}
	fakeB := g2.ScalarMult(fakeResponse).Add(R.ScalarMult(fakeChallenge))

	var a1, b1, a2, b2 group.Point
	if v {
		a1, b1 = fakeA, fakeB
		a2, b2 = genuineA, genuineB
	} else {
		a1, b1 = genuineA, genuineB
		a2, b2 = fakeA, fakeB
	}

	challenge := g.HashToScalar(
		g1.Bytes(), g2.Bytes(), z.Bytes(), R.Bytes(),
		a1.Bytes(), b1.Bytes(), a2.Bytes(), b2.Bytes(),
		ballotID, candidateID,
	)
	genuineChallenge := challenge.Sub(fakeChallenge)
	genuineResponse := rho.Sub(r.Mul(genuineChallenge))

	if v {
		return &VoteProof{
			C1: fakeChallenge, C2: genuineChallenge,
			R1: fakeResponse, R2: genuineResponse,
		}, nil
	}
	return &VoteProof{
		C1: genuineChallenge, C2: fakeChallenge,
		R1: genuineResponse, R2: fakeResponse,
	}, nil
}

// Verify checks the proof against the vote's public commitments Z and
// R, and the ballot/candidate identifiers it was bound to at
// construction time.
func (p *VoteProof) Verify(
	g group.Group,
	g1, g2 group.Point,
	z, R group.Point,
	ballotID, candidateID []byte,
) bool {
	a1 := g1.ScalarMult(p.R1).Add(z.ScalarMult(p.C1))
	b1 := g2.ScalarMult(p.R1).Add(R.ScalarMult(p.C1))
	a2 := g1.ScalarMult(p.R2).Add(z.Sub(g1).ScalarMult(p.C2))
	b2 := g2.ScalarMult(p.R2).Add(R.ScalarMult(p.C2))

	challenge := g.HashToScalar(
		g1.Bytes(), g2.Bytes(), z.Bytes(), R.Bytes(),
		a1.Bytes(), b1.Bytes(), a2.Bytes(), b2.Bytes(),
		ballotID, candidateID,
	)

	return p.C1.Add(p.C2).Equal(challenge)
}

// Bytes returns the canonical byte sequence c1 || c2 || r1 || r2,
// suitable for inclusion in a ballot's signing pre-image.
func (p *VoteProof) Bytes() []byte {
	out := make([]byte, 0, 4*32)
	out = append(out, p.C1.Bytes()...)
	out = append(out, p.C2.Bytes()...)
	out = append(out, p.R1.Bytes()...)
	out = append(out, p.R2.Bytes()...)
	return out
}

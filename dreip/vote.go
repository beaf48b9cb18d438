// Package dreip implements the DRE-ip ballot/vote lifecycle and
// election-wide verification: ballot creation against a fresh Election,
// the confirm transition that folds a ballot's secrets into running
// candidate totals and erases them, and the two verification passes
// (confirmed ballots checked against totals, audited ballots checked
// against their retained secrets directly).
package dreip

import (
	"github.com/vocdoni/dreip/group"
	"github.com/vocdoni/dreip/proof"
)

// VoteSecrets holds a vote's randomness and plaintext value prior to
// confirmation. Both are zeroized when the vote is confirmed.
type VoteSecrets struct {
	R group.Scalar // secret randomness
	V group.Scalar // secret vote value, 0 or 1
}

// Vote is a single candidate's committed, proven vote within a ballot.
// Secrets is non-nil until the vote is confirmed, at which point its
// randomness and plaintext are zeroized and the pointer set to nil. An
// audited vote retains Secrets for its whole lifetime.
type Vote struct {
	Secrets *VoteSecrets // nil once confirmed
	R       group.Point
	Z       group.Point
	PWF     *proof.VoteProof
}

// Confirm zeroizes the vote's secret randomness and plaintext and
// discards them. Callers must fold Secrets into a CandidateTotals
// accumulator before calling this; afterward the values are gone.
func (v *Vote) Confirm() {
	if v.Secrets == nil {
		return
	}
	eraseScalar(v.Secrets.R)
	eraseScalar(v.Secrets.V)
	v.Secrets = nil
}

// eraseScalar zeroizes s's backing storage if its concrete type
// supports it. Not every group.Scalar implementation needs mutable
// secret state, so this is a best-effort type assertion rather than a
// required interface method.
func eraseScalar(s group.Scalar) {
	if s == nil {
		return
	}
	if e, ok := s.(group.Eraser); ok {
		e.Erase()
	}
}

// ToBytes returns the canonical encoding of the vote: R || Z ||
// vote-proof-bytes if confirmed, or r || v || R || Z || vote-proof-bytes
// if secrets are still present (used for audit-time re-derivation and
// for signing a ballot before it is confirmed).
func (v *Vote) ToBytes() []byte {
	var out []byte
	if v.Secrets != nil {
		out = append(out, v.Secrets.R.Bytes()...)
		out = append(out, v.Secrets.V.Bytes()...)
	}
	out = append(out, v.R.Bytes()...)
	out = append(out, v.Z.Bytes()...)
	out = append(out, v.PWF.Bytes()...)
	return out
}

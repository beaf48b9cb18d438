package dreip

import (
	"errors"
	"fmt"
)

// ErrCandidateSetMismatch is returned when the candidate ids present
// across a set of ballots do not match the candidate ids present in a
// CandidateTotals map.
var ErrCandidateSetMismatch = errors.New("dreip: candidate set mismatch between ballots and totals")

// ErrDuplicateCandidate is returned by CreateBallot when the same
// candidate id appears more than once among the yes/no candidates
// passed to it.
var ErrDuplicateCandidate = errors.New("dreip: duplicate candidate id")

// VoteProofError reports that a vote's disjunctive zero-knowledge proof
// failed to verify.
type VoteProofError struct {
	BallotID    string
	CandidateID string
}

func (e *VoteProofError) Error() string {
	return fmt.Sprintf("dreip: vote proof failed for ballot %q, candidate %q", e.BallotID, e.CandidateID)
}

// BallotProofError reports that a ballot's sum proof failed to verify.
type BallotProofError struct {
	BallotID string
}

func (e *BallotProofError) Error() string {
	return fmt.Sprintf("dreip: ballot proof failed for ballot %q", e.BallotID)
}

// TallyError reports that a candidate's announced tally does not match
// the sum of the confirmed ballots' commitments for that candidate.
type TallyError struct {
	CandidateID string
}

func (e *TallyError) Error() string {
	return fmt.Sprintf("dreip: tally mismatch for candidate %q", e.CandidateID)
}

// DecodeError reports a failure to decode a wire-format field, wrapping
// the underlying cause (an invalid length, an out-of-range scalar, a
// point not on the curve, etc).
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dreip: decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

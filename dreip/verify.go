package dreip

import (
	"runtime"
	"sync"

	"github.com/vocdoni/dreip/group"
)

// candidateAgg accumulates the sum of Z and R commitments across every
// confirmed ballot for a single candidate.
type candidateAgg struct {
	mu   sync.Mutex
	zSum group.Point
	rSum group.Point
}

func newCandidateAgg(g group.Group) *candidateAgg {
	return &candidateAgg{zSum: g.Identity(), rSum: g.Identity()}
}

func (a *candidateAgg) add(z, r group.Point) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.zSum = a.zSum.Add(z)
	a.rSum = a.rSum.Add(r)
}

// forEachBallot runs work for every ballot in ballots using a worker
// pool bounded by GOMAXPROCS, waits for all of them, and returns the
// first error observed, if any. Goroutine completion order does not
// affect the aggregated sums, which are commutative/associative; when
// several ballots fail, which of their errors is returned depends on
// completion order.
func forEachBallot(ballots map[string]*Ballot, work func(ballotID string, b *Ballot) error) error {
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for id, ballot := range ballots {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string, ballot *Ballot) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := work(id, ballot); err != nil {
				once.Do(func() { firstErr = err })
			}
		}(id, ballot)
	}
	wg.Wait()
	return firstErr
}

// VerifyConfirmed checks every confirmed ballot's vote and ballot
// proofs, then checks that each candidate's announced CandidateTotals
// matches the sum of that candidate's commitments across all ballots:
// g1·(tally+rsum) = sum(Z) and g2·rsum = sum(R).
func VerifyConfirmed(g group.Group, g1, g2 group.Point, ballots map[string]*Ballot, totals map[string]*CandidateTotals) error {
	aggs := make(map[string]*candidateAgg, len(totals))
	for id := range totals {
		aggs[id] = newCandidateAgg(g)
	}

	err := forEachBallot(ballots, func(ballotID string, ballot *Ballot) error {
		for candidateID, vote := range ballot.Votes {
			if vote.Secrets != nil {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
			agg, ok := aggs[candidateID]
			if !ok {
				return ErrCandidateSetMismatch
			}
			if !vote.PWF.Verify(g, g1, g2, vote.Z, vote.R, []byte(ballotID), []byte(candidateID)) {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
			agg.add(vote.Z, vote.R)
		}

		zSum, rSum := ballot.sumCommitments(g)
		if !ballot.PWF.Verify(g, g1, g2, zSum, rSum, []byte(ballotID)) {
			return &BallotProofError{BallotID: ballotID}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for candidateID, t := range totals {
		agg := aggs[candidateID]
		lhsZ := g1.ScalarMult(t.Tally.Add(t.RSum))
		lhsR := g2.ScalarMult(t.RSum)
		if !lhsZ.Equal(agg.zSum) || !lhsR.Equal(agg.rSum) {
			return &TallyError{CandidateID: candidateID}
		}
	}
	return nil
}

// VerifyAudited checks every audited ballot's vote and ballot proofs,
// and additionally that each vote's retained secrets are consistent
// with its public commitments: R = g2·r, Z = g1·(r+v), v ∈ {0,1}.
func VerifyAudited(g group.Group, g1, g2 group.Point, ballots map[string]*Ballot) error {
	return forEachBallot(ballots, func(ballotID string, ballot *Ballot) error {
		for candidateID, vote := range ballot.Votes {
			if vote.Secrets == nil {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
			v := vote.Secrets.V
			if !v.IsZero() && !v.Equal(g.ScalarOne()) {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
			expectedR := g2.ScalarMult(vote.Secrets.R)
			expectedZ := g1.ScalarMult(vote.Secrets.R.Add(v))
			if !expectedR.Equal(vote.R) || !expectedZ.Equal(vote.Z) {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
			if !vote.PWF.Verify(g, g1, g2, vote.Z, vote.R, []byte(ballotID), []byte(candidateID)) {
				return &VoteProofError{BallotID: ballotID, CandidateID: candidateID}
			}
		}

		zSum, rSum := ballot.sumCommitments(g)
		if !ballot.PWF.Verify(g, g1, g2, zSum, rSum, []byte(ballotID)) {
			return &BallotProofError{BallotID: ballotID}
		}
		return nil
	})
}

// Verify checks an entire ElectionResults: its confirmed ballots
// against its published totals, and its audited ballots against their
// retained secrets.
func (r *ElectionResults) Verify() error {
	g1, g2 := r.Election.G1, r.Election.G2
	if err := verifyCandidateSets(r.Confirmed, r.Totals); err != nil {
		return err
	}
	if err := VerifyConfirmed(r.Group, g1, g2, r.Confirmed, r.Totals); err != nil {
		return err
	}
	return VerifyAudited(r.Group, g1, g2, r.Audited)
}

// verifyCandidateSets checks that the candidate ids appearing across
// every confirmed ballot are exactly the keys of totals: every ballot
// candidate must have a totals entry, and every totals entry must be
// covered by at least one ballot, so totals cannot announce a
// candidate that no ballot actually voted on.
func verifyCandidateSets(ballots map[string]*Ballot, totals map[string]*CandidateTotals) error {
	seen := make(map[string]bool, len(totals))
	for _, ballot := range ballots {
		for candidateID := range ballot.Votes {
			if _, ok := totals[candidateID]; !ok {
				return ErrCandidateSetMismatch
			}
			seen[candidateID] = true
		}
	}
	if len(seen) != len(totals) {
		return ErrCandidateSetMismatch
	}
	return nil
}

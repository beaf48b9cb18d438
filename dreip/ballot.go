package dreip

import (
	"fmt"
	"sort"

	"github.com/vocdoni/dreip/group"
	"github.com/vocdoni/dreip/proof"
)

// Ballot is a complete, self-contained ballot: one Vote per candidate in
// the election, plus a proof that exactly one of them encodes a yes.
type Ballot struct {
	Votes map[string]*Vote // candidate id -> vote
	PWF   *proof.BallotProof
}

// candidateIDs returns the ballot's candidate ids in ascending byte
// order, the canonical order used for serialization and signing.
func (b *Ballot) candidateIDs() []string {
	ids := make([]string, 0, len(b.Votes))
	for id := range b.Votes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToBytes returns the canonical byte encoding of the ballot: for each
// candidate in ascending id order, candidate-id bytes followed by the
// vote's own encoding, followed finally by the ballot proof's encoding.
func (b *Ballot) ToBytes() []byte {
	var out []byte
	for _, id := range b.candidateIDs() {
		out = append(out, []byte(id)...)
		out = append(out, b.Votes[id].ToBytes()...)
	}
	out = append(out, b.PWF.Bytes()...)
	return out
}

// Confirm erases every vote's secrets, folding them into totals first
// if totals is supplied. If totals is supplied it must already contain
// a CandidateTotals entry for every candidate on the ballot; a missing
// entry is a caller programming error, not a recoverable condition,
// and panics. A nil totals skips accumulation entirely, for callers
// who track totals some other way.
func (b *Ballot) Confirm(totals map[string]*CandidateTotals) {
	for id, vote := range b.Votes {
		if vote.Secrets == nil {
			continue
		}
		if totals != nil {
			t, ok := totals[id]
			if !ok {
				panic(fmt.Sprintf("dreip: Confirm: no CandidateTotals entry for candidate %q", id))
			}
			t.Tally = t.Tally.Add(vote.Secrets.V)
			t.RSum = t.RSum.Add(vote.Secrets.R)
		}
		vote.Confirm()
	}
}

// sumCommitments returns the sum of Z and the sum of R across all of the
// ballot's votes, used to verify the ballot's own sum proof.
func (b *Ballot) sumCommitments(g group.Group) (zSum, rSum group.Point) {
	zSum, rSum = g.Identity(), g.Identity()
	for _, vote := range b.Votes {
		zSum = zSum.Add(vote.Z)
		rSum = rSum.Add(vote.R)
	}
	return zSum, rSum
}

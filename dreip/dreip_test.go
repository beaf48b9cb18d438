package dreip

import (
	"crypto/rand"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/dreip/group"
	"github.com/vocdoni/dreip/group/p256"
)

// buildAllVoteAlice builds the scenario from spec §8.1: candidates
// Alice/Bob/Eve, five ballots all voting for Alice, confirmed.
func buildAllVoteAlice(c *qt.C) (g group.Group, g1, g2 group.Point, results *ElectionResults) {
	g = p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-all-alice"))
	c.Assert(err, qt.IsNil)

	totals := map[string]*CandidateTotals{
		"Alice": {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
		"Bob":   {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
		"Eve":   {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
	}
	confirmed := make(map[string]*Ballot, 5)

	for i := 0; i < 5; i++ {
		ballotID := string(rune('0' + i))
		b, err := e.CreateBallot(rand.Reader, ballotID, "Alice", []string{"Bob", "Eve"})
		c.Assert(err, qt.IsNil)
		b.Confirm(totals)
		confirmed[ballotID] = b
	}

	results = e.Results(confirmed, map[string]*Ballot{}, totals)
	return g, e.G1, e.G2, results
}

func TestAllVoteAliceTallyCheck(t *testing.T) {
	c := qt.New(t)
	_, _, _, results := buildAllVoteAlice(c)

	c.Assert(results.Totals["Alice"].Tally.Equal(scalarOf(c, results.Group, 5)), qt.IsTrue)
	c.Assert(results.Totals["Bob"].Tally.IsZero(), qt.IsTrue)
	c.Assert(results.Totals["Eve"].Tally.IsZero(), qt.IsTrue)

	c.Assert(results.Verify(), qt.IsNil)
}

func scalarOf(c *qt.C, g group.Group, n int) group.Scalar {
	s := g.ScalarZero()
	for i := 0; i < n; i++ {
		s = s.Add(g.ScalarOne())
	}
	return s
}

func TestTamperedTallyFailsVerification(t *testing.T) {
	c := qt.New(t)
	g, _, _, results := buildAllVoteAlice(c)

	results.Totals["Eve"].Tally = scalarOf(c, g, 5)

	err := results.Verify()
	c.Assert(err, qt.Not(qt.IsNil))
	var tallyErr *TallyError
	c.Assert(errors.As(err, &tallyErr), qt.IsTrue)
	c.Assert(tallyErr.CandidateID, qt.Equals, "Eve")
}

func TestTamperedRSumFailsVerification(t *testing.T) {
	c := qt.New(t)
	g, _, _, results := buildAllVoteAlice(c)

	fresh, err := g.RandomScalar(rand.Reader)
	c.Assert(err, qt.IsNil)
	results.Totals["Alice"].RSum = fresh

	verr := results.Verify()
	c.Assert(verr, qt.Not(qt.IsNil))
	var tallyErr *TallyError
	c.Assert(errors.As(verr, &tallyErr), qt.IsTrue)
	c.Assert(tallyErr.CandidateID, qt.Equals, "Alice")
}

func TestTamperedRFailsVoteProof(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-tampered-r"))
	c.Assert(err, qt.IsNil)

	totals := map[string]*CandidateTotals{
		"Alice": {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
		"Bob":   {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
		"Eve":   {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
	}

	b, err := e.CreateBallot(rand.Reader, "ballot-x", "Alice", []string{"Bob", "Eve"})
	c.Assert(err, qt.IsNil)
	b.Confirm(totals)

	b.Votes["Alice"].R = g.Identity()

	confirmed := map[string]*Ballot{"ballot-x": b}
	results := e.Results(confirmed, map[string]*Ballot{}, totals)

	verr := results.Verify()
	c.Assert(verr, qt.Not(qt.IsNil))
	var voteErr *VoteProofError
	c.Assert(errors.As(verr, &voteErr), qt.IsTrue)
	c.Assert(voteErr.BallotID, qt.Equals, "ballot-x")
	c.Assert(voteErr.CandidateID, qt.Equals, "Alice")
}

func TestTamperedBallotProofResponseFails(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-tampered-pwf"))
	c.Assert(err, qt.IsNil)

	totals := map[string]*CandidateTotals{
		"Alice": {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
		"Bob":   {Tally: g.ScalarZero(), RSum: g.ScalarZero()},
	}

	b, err := e.CreateBallot(rand.Reader, "ballot-y", "Alice", []string{"Bob"})
	c.Assert(err, qt.IsNil)

	fresh, err := g.RandomScalar(rand.Reader)
	c.Assert(err, qt.IsNil)
	b.PWF.Response = fresh

	b.Confirm(totals)
	confirmed := map[string]*Ballot{"ballot-y": b}
	results := e.Results(confirmed, map[string]*Ballot{}, totals)

	verr := results.Verify()
	c.Assert(verr, qt.Not(qt.IsNil))
	var ballotErr *BallotProofError
	c.Assert(errors.As(verr, &ballotErr), qt.IsTrue)
	c.Assert(ballotErr.BallotID, qt.Equals, "ballot-y")
}

func TestCreateBallotRejectsDuplicateCandidate(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-duplicate"))
	c.Assert(err, qt.IsNil)

	_, err = e.CreateBallot(rand.Reader, "ballot-z", "A", []string{"B", "A"})
	c.Assert(err, qt.Equals, ErrDuplicateCandidate)
}

func TestAuditedBallotVerifiesAgainstSecrets(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-audit"))
	c.Assert(err, qt.IsNil)

	b, err := e.CreateBallot(rand.Reader, "ballot-audit", "Alice", []string{"Bob"})
	c.Assert(err, qt.IsNil)

	audited := map[string]*Ballot{"ballot-audit": b}
	results := e.Results(map[string]*Ballot{}, audited, map[string]*CandidateTotals{})

	c.Assert(results.Verify(), qt.IsNil)

	// Tampering with the retained secret vote value must be caught.
	b.Votes["Alice"].Secrets.V = g.ScalarZero()
	c.Assert(results.Verify(), qt.Not(qt.IsNil))
}

func TestBallotToBytesIsDeterministicAndOrderIndependent(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-bytes"))
	c.Assert(err, qt.IsNil)

	b, err := e.CreateBallot(rand.Reader, "ballot-bytes", "Alice", []string{"Bob", "Eve"})
	c.Assert(err, qt.IsNil)

	first := b.ToBytes()
	second := b.ToBytes()
	c.Assert(first, qt.DeepEquals, second)

	// The same votes inserted in a different order encode identically.
	reordered := &Ballot{Votes: make(map[string]*Vote, len(b.Votes)), PWF: b.PWF}
	for _, id := range []string{"Eve", "Bob", "Alice"} {
		reordered.Votes[id] = b.Votes[id]
	}
	c.Assert(reordered.ToBytes(), qt.DeepEquals, first)
}

func TestConfirmWithNilTotalsErasesSecretsWithoutAccumulating(t *testing.T) {
	c := qt.New(t)
	g := p256.New()
	e, err := NewElection(g, rand.Reader, []byte("scenario-confirm-nil-totals"))
	c.Assert(err, qt.IsNil)

	b, err := e.CreateBallot(rand.Reader, "ballot-nil-totals", "Alice", []string{"Bob"})
	c.Assert(err, qt.IsNil)

	c.Assert(func() { b.Confirm(nil) }, qt.Not(qt.PanicMatches), ".*")
	for _, vote := range b.Votes {
		c.Assert(vote.Secrets, qt.IsNil)
	}
}

func TestVerifyRejectsTotalsWithPhantomCandidate(t *testing.T) {
	c := qt.New(t)
	g, _, _, results := buildAllVoteAlice(c)
	c.Assert(results.Verify(), qt.IsNil)

	// Totals announces a candidate no ballot ever voted on; every
	// ballot-candidate id is still covered by totals, so only the
	// reverse (totals-superset) check can catch this.
	results.Totals["Ghost"] = &CandidateTotals{Tally: g.ScalarZero(), RSum: g.ScalarZero()}
	c.Assert(results.Verify(), qt.Equals, ErrCandidateSetMismatch)
}

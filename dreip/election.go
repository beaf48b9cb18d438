package dreip

import (
	"io"

	"github.com/vocdoni/dreip/group"
	"github.com/vocdoni/dreip/proof"
)

// Election holds a fresh election's group generators and signing
// keypair. The creator-side Election is the only place the private key
// lives; Public strips it for publication.
type Election struct {
	group      group.Group
	G1         group.Point
	G2         group.Point
	publicKey  group.PublicKey
	privateKey group.PrivateKey
}

// PublicElection is an Election with its private key removed, suitable
// for publication alongside an ElectionResults.
type PublicElection struct {
	G1        group.Point
	G2        group.Point
	PublicKey group.PublicKey
}

// CandidateTotals accumulates one candidate's confirmed tally and the
// sum of the secret randomness behind it, updated only by Confirm.
type CandidateTotals struct {
	Tally group.Scalar
	RSum  group.Scalar
}

// ElectionResults is the full published transcript of a closed
// election: its public parameters, every confirmed and audited ballot,
// and the resulting per-candidate totals. Group is the instantiation
// its commitments were computed over; the dump codec sets it on decode
// since the wire format itself does not name a group.
type ElectionResults struct {
	Group     group.Group
	Election  PublicElection
	Confirmed map[string]*Ballot
	Audited   map[string]*Ballot
	Totals    map[string]*CandidateTotals
}

// Results returns the published results for this election. Its Group
// field is set from the election's own group because, unlike Election,
// ElectionResults otherwise has no reference back to the Group
// implementation its points/scalars belong to.
func (e *Election) Results(confirmed, audited map[string]*Ballot, totals map[string]*CandidateTotals) *ElectionResults {
	return &ElectionResults{
		Group:     e.group,
		Election:  e.Public(),
		Confirmed: confirmed,
		Audited:   audited,
		Totals:    totals,
	}
}

// NewElection creates a fresh election: g2 is derived deterministically
// from uniqueBytes via hash-to-curve, so it must never be reused across
// elections, and a fresh signing keypair is generated using rng.
func NewElection(g group.Group, rng io.Reader, uniqueBytes ...[]byte) (*Election, error) {
	g1, g2 := g.NewGenerators(uniqueBytes...)
	priv, pub, err := g.NewKeys(rng)
	if err != nil {
		return nil, err
	}
	return &Election{group: g, G1: g1, G2: g2, publicKey: pub, privateKey: priv}, nil
}

// Public returns the election's public parameters, suitable for
// publication without exposing the private signing key.
func (e *Election) Public() PublicElection {
	return PublicElection{G1: e.G1, G2: e.G2, PublicKey: e.publicKey}
}

// Erase zeroizes the election's private signing key. Callers must call
// this once the creator side of the election has no further ballots to
// sign, since Go has no destructors.
func (e *Election) Erase() {
	if er, ok := e.privateKey.(group.Eraser); ok {
		er.Erase()
	}
}

// CreateBallot builds a new ballot for ballotID, with v=1 for
// yesCandidate and v=0 for every id in noCandidates. It returns
// ErrDuplicateCandidate if yesCandidate repeats or any id in
// noCandidates repeats.
func (e *Election) CreateBallot(rng io.Reader, ballotID string, yesCandidate string, noCandidates []string) (*Ballot, error) {
	seen := map[string]bool{yesCandidate: true}
	for _, id := range noCandidates {
		if seen[id] {
			return nil, ErrDuplicateCandidate
		}
		seen[id] = true
	}

	votes := make(map[string]*Vote, len(seen))
	rSum := e.group.ScalarZero()

	build := func(candidateID string, yes bool) error {
		r, err := e.group.RandomScalar(rng)
		if err != nil {
			return err
		}
		v := e.group.ScalarZero()
		if yes {
			v = e.group.ScalarOne()
		}
		R := e.G2.ScalarMult(r)
		Z := e.G1.ScalarMult(r.Add(v))

		pwf, err := proof.NewVoteProof(rng, e.group, e.G1, e.G2, r, yes, Z, R, []byte(ballotID), []byte(candidateID))
		if err != nil {
			return err
		}

		votes[candidateID] = &Vote{
			Secrets: &VoteSecrets{R: r, V: v},
			R:       R,
			Z:       Z,
			PWF:     pwf,
		}
		rSum = rSum.Add(r)
		return nil
	}

	if err := build(yesCandidate, true); err != nil {
		return nil, err
	}
	for _, id := range noCandidates {
		if err := build(id, false); err != nil {
			return nil, err
		}
	}

	pwf, err := proof.NewBallotProof(rng, e.group, e.G1, e.G2, rSum, []byte(ballotID))
	if err != nil {
		return nil, err
	}

	return &Ballot{Votes: votes, PWF: pwf}, nil
}

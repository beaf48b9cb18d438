// Package dump implements the JSON encode/decode contract for
// dreip.ElectionResults: every Point/Scalar/Signature field is a hex
// string of its canonical wire encoding, following the teacher's own
// MarshalJSON/UnmarshalJSON idiom on crypto/elgamal.Ciphertext, since
// group.Point/group.Scalar are interfaces and need explicit
// reconstruction against a known Group on decode rather than relying on
// struct-tag-only (un)marshaling.
package dump

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vocdoni/dreip/dreip"
	"github.com/vocdoni/dreip/group"
	"github.com/vocdoni/dreip/proof"
)

// electionDump is the on-wire JSON shape of an ElectionResults.
type electionDump struct {
	Election  electionParamsDump       `json:"election"`
	Confirmed map[string]ballotDump    `json:"confirmed"`
	Audited   map[string]ballotDump    `json:"audited"`
	Totals    map[string]candidateDump `json:"totals"`
}

type electionParamsDump struct {
	G1        string `json:"g1"`
	G2        string `json:"g2"`
	PublicKey string `json:"public_key"`
}

type candidateDump struct {
	Tally string `json:"tally"`
	RSum  string `json:"r_sum"`
}

type ballotDump struct {
	Votes map[string]voteDump `json:"votes"`
	PWF   ballotProofDump     `json:"pwf"`
}

type voteDump struct {
	Secrets *voteSecretsDump `json:"secrets,omitempty"`
	R       string           `json:"r"`
	Z       string           `json:"z"`
	PWF     voteProofDump    `json:"pwf"`
}

type voteSecretsDump struct {
	R string `json:"r"`
	V string `json:"v"`
}

type voteProofDump struct {
	C1 string `json:"c1"`
	C2 string `json:"c2"`
	R1 string `json:"r1"`
	R2 string `json:"r2"`
}

type ballotProofDump struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Response string `json:"response"`
}

func hexOf(b []byte) string { return hex.EncodeToString(b) }

func decodeHexPoint(g group.Group, field, s string) (group.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &dreip.DecodeError{Field: field, Err: err}
	}
	p, err := g.PointFromBytes(b)
	if err != nil {
		return nil, &dreip.DecodeError{Field: field, Err: err}
	}
	return p, nil
}

func decodeHexScalar(g group.Group, field, s string) (group.Scalar, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &dreip.DecodeError{Field: field, Err: err}
	}
	sc, err := g.ScalarFromBytes(b)
	if err != nil {
		return nil, &dreip.DecodeError{Field: field, Err: err}
	}
	return sc, nil
}

// Marshal encodes an ElectionResults as canonical JSON.
func Marshal(r *dreip.ElectionResults) ([]byte, error) {
	d := electionDump{
		Election: electionParamsDump{
			G1:        hexOf(r.Election.G1.Bytes()),
			G2:        hexOf(r.Election.G2.Bytes()),
			PublicKey: hexOf(r.Election.PublicKey.Bytes()),
		},
		Confirmed: make(map[string]ballotDump, len(r.Confirmed)),
		Audited:   make(map[string]ballotDump, len(r.Audited)),
		Totals:    make(map[string]candidateDump, len(r.Totals)),
	}
	for id, b := range r.Confirmed {
		d.Confirmed[id] = ballotToDump(b)
	}
	for id, b := range r.Audited {
		d.Audited[id] = ballotToDump(b)
	}
	for id, t := range r.Totals {
		d.Totals[id] = candidateDump{Tally: hexOf(t.Tally.Bytes()), RSum: hexOf(t.RSum.Bytes())}
	}
	return json.MarshalIndent(d, "", "  ")
}

func ballotToDump(b *dreip.Ballot) ballotDump {
	votes := make(map[string]voteDump, len(b.Votes))
	for id, v := range b.Votes {
		vd := voteDump{
			R: hexOf(v.R.Bytes()),
			Z: hexOf(v.Z.Bytes()),
			PWF: voteProofDump{
				C1: hexOf(v.PWF.C1.Bytes()),
				C2: hexOf(v.PWF.C2.Bytes()),
				R1: hexOf(v.PWF.R1.Bytes()),
				R2: hexOf(v.PWF.R2.Bytes()),
			},
		}
		if v.Secrets != nil {
			vd.Secrets = &voteSecretsDump{
				R: hexOf(v.Secrets.R.Bytes()),
				V: hexOf(v.Secrets.V.Bytes()),
			}
		}
		votes[id] = vd
	}
	return ballotDump{
		Votes: votes,
		PWF: ballotProofDump{
			A:        hexOf(b.PWF.A.Bytes()),
			B:        hexOf(b.PWF.B.Bytes()),
			Response: hexOf(b.PWF.Response.Bytes()),
		},
	}
}

// Unmarshal decodes JSON produced by Marshal into an ElectionResults,
// reconstructing every Point/Scalar against g.
func Unmarshal(g group.Group, data []byte) (*dreip.ElectionResults, error) {
	var d electionDump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &dreip.DecodeError{Field: "election", Err: err}
	}

	g1, err := decodeHexPoint(g, "election.g1", d.Election.G1)
	if err != nil {
		return nil, err
	}
	g2, err := decodeHexPoint(g, "election.g2", d.Election.G2)
	if err != nil {
		return nil, err
	}
	pkBytes, err := hex.DecodeString(d.Election.PublicKey)
	if err != nil {
		return nil, &dreip.DecodeError{Field: "election.public_key", Err: err}
	}
	pk, err := g.PublicKeyFromBytes(pkBytes)
	if err != nil {
		return nil, &dreip.DecodeError{Field: "election.public_key", Err: err}
	}

	confirmed := make(map[string]*dreip.Ballot, len(d.Confirmed))
	for id, bd := range d.Confirmed {
		b, err := ballotFromDump(g, bd)
		if err != nil {
			return nil, err
		}
		confirmed[id] = b
	}
	audited := make(map[string]*dreip.Ballot, len(d.Audited))
	for id, bd := range d.Audited {
		b, err := ballotFromDump(g, bd)
		if err != nil {
			return nil, err
		}
		audited[id] = b
	}
	totals := make(map[string]*dreip.CandidateTotals, len(d.Totals))
	for id, td := range d.Totals {
		tally, err := decodeHexScalar(g, fmt.Sprintf("totals[%s].tally", id), td.Tally)
		if err != nil {
			return nil, err
		}
		rSum, err := decodeHexScalar(g, fmt.Sprintf("totals[%s].r_sum", id), td.RSum)
		if err != nil {
			return nil, err
		}
		totals[id] = &dreip.CandidateTotals{Tally: tally, RSum: rSum}
	}

	return &dreip.ElectionResults{
		Group: g,
		Election: dreip.PublicElection{
			G1: g1, G2: g2, PublicKey: pk,
		},
		Confirmed: confirmed,
		Audited:   audited,
		Totals:    totals,
	}, nil
}

func ballotFromDump(g group.Group, bd ballotDump) (*dreip.Ballot, error) {
	votes := make(map[string]*dreip.Vote, len(bd.Votes))
	for id, vd := range bd.Votes {
		v, err := voteFromDump(g, id, vd)
		if err != nil {
			return nil, err
		}
		votes[id] = v
	}

	a, err := decodeHexPoint(g, "pwf.a", bd.PWF.A)
	if err != nil {
		return nil, err
	}
	b, err := decodeHexPoint(g, "pwf.b", bd.PWF.B)
	if err != nil {
		return nil, err
	}
	resp, err := decodeHexScalar(g, "pwf.response", bd.PWF.Response)
	if err != nil {
		return nil, err
	}

	return &dreip.Ballot{
		Votes: votes,
		PWF:   &proof.BallotProof{A: a, B: b, Response: resp},
	}, nil
}

func voteFromDump(g group.Group, candidateID string, vd voteDump) (*dreip.Vote, error) {
	r, err := decodeHexPoint(g, fmt.Sprintf("votes[%s].r", candidateID), vd.R)
	if err != nil {
		return nil, err
	}
	z, err := decodeHexPoint(g, fmt.Sprintf("votes[%s].z", candidateID), vd.Z)
	if err != nil {
		return nil, err
	}
	c1, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].pwf.c1", candidateID), vd.PWF.C1)
	if err != nil {
		return nil, err
	}
	c2, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].pwf.c2", candidateID), vd.PWF.C2)
	if err != nil {
		return nil, err
	}
	r1, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].pwf.r1", candidateID), vd.PWF.R1)
	if err != nil {
		return nil, err
	}
	r2, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].pwf.r2", candidateID), vd.PWF.R2)
	if err != nil {
		return nil, err
	}

	vote := &dreip.Vote{
		R:   r,
		Z:   z,
		PWF: &proof.VoteProof{C1: c1, C2: c2, R1: r1, R2: r2},
	}
	if vd.Secrets != nil {
		sr, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].secrets.r", candidateID), vd.Secrets.R)
		if err != nil {
			return nil, err
		}
		sv, err := decodeHexScalar(g, fmt.Sprintf("votes[%s].secrets.v", candidateID), vd.Secrets.V)
		if err != nil {
			return nil, err
		}
		vote.Secrets = &dreip.VoteSecrets{R: sr, V: sv}
	}
	return vote, nil
}

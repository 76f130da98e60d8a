package governance

import (
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voter"
	"conclave.network/conclave/lib/voting"
)

// Read-only projections over the proposal and ballot tables. Queries
// never persist a status change; an expired-but-untouched proposal is
// reported with its effective status while storage keeps OPEN until the
// next mutating operation finalizes it.

// ThresholdState is the current tally and policy outcome of a proposal.
type ThresholdState struct {
	ProposalID  uint64            `json:"proposal_id"`
	Threshold   voting.Threshold  `json:"threshold"`
	TotalWeight uint64            `json:"total_weight"`
	Tally       voting.Tally      `json:"tally"`
	Status      voting.Status     `json:"status"`
	Expires     voting.Expiration `json:"expires"`
}

func (e *Engine) Proposal(id uint64) (Proposal, error) {
	return GetProposal(e.st, id)
}

// EffectiveStatus reports what the status will become once a mutating
// operation touches the proposal, without persisting it.
func (e *Engine) EffectiveStatus(p Proposal) voting.Status {
	if p.Status == voting.OPEN && p.Expires.Expired(e.clock.Height(), e.clock.Now()) {
		return voting.REJECTED
	}

	return p.Status
}

func (e *Engine) Proposals(options storage.ListOptions) ([]Proposal, error) {
	var proposals []Proposal

	iterFunc, closeFunc := GetProposals(e.st, options)
	defer closeFunc()

	for {
		p, hasNext := iterFunc()
		if !hasNext {
			break
		}
		proposals = append(proposals, p)
	}

	return proposals, nil
}

func (e *Engine) Ballot(proposalID uint64, address string) (Ballot, error) {
	return GetBallot(e.st, proposalID, address)
}

func (e *Engine) Ballots(proposalID uint64, options storage.ListOptions) ([]Ballot, error) {
	if _, err := GetProposal(e.st, proposalID); err != nil {
		return nil, err
	}

	var ballots []Ballot

	iterFunc, closeFunc := GetBallots(e.st, proposalID, options)
	defer closeFunc()

	for {
		b, hasNext := iterFunc()
		if !hasNext {
			break
		}
		ballots = append(ballots, b)
	}

	return ballots, nil
}

func (e *Engine) Threshold(proposalID uint64) (ThresholdState, error) {
	p, err := GetProposal(e.st, proposalID)
	if err != nil {
		return ThresholdState{}, err
	}

	tally, err := TallyBallots(e.st, proposalID)
	if err != nil {
		return ThresholdState{}, err
	}

	return ThresholdState{
		ProposalID:  p.ID,
		Threshold:   p.Threshold,
		TotalWeight: p.TotalWeight,
		Tally:       tally,
		Status:      e.EffectiveStatus(p),
		Expires:     p.Expires,
	}, nil
}

func (e *Engine) Voters() []voter.Voter {
	return e.registry.Voters()
}

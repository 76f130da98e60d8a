package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"conclave.network/conclave/lib/governance"
)

type Ballot struct {
	b *governance.Ballot
}

func NewBallot(b *governance.Ballot) *Ballot {
	return &Ballot{b: b}
}

func (b Ballot) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id": b.b.ProposalID,
		"voter":       b.b.Voter,
		"choice":      b.b.Choice,
		"weight":      b.b.Weight,
	}
}

func (b Ballot) Resource() *hal.Resource {
	id := strconv.FormatUint(b.b.ProposalID, 10)

	r := hal.NewResource(b, b.LinkSelf())
	r.AddLink("proposal", hal.NewLink(strings.Replace(URLProposal, "{id}", id, -1)))
	return r
}

func (b Ballot) LinkSelf() string {
	id := strconv.FormatUint(b.b.ProposalID, 10)
	link := strings.Replace(URLProposalVote, "{id}", id, -1)
	return strings.Replace(link, "{address}", b.b.Voter, -1)
}

package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"conclave.network/conclave/lib/governance"
)

type Proposal struct {
	p *governance.Proposal
}

func NewProposal(p *governance.Proposal) *Proposal {
	return &Proposal{p: p}
}

func (p Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"id":           p.p.ID,
		"proposer":     p.p.Proposer,
		"title":        p.p.Title,
		"description":  p.p.Description,
		"actions":      p.p.Actions,
		"threshold":    p.p.Threshold,
		"total_weight": p.p.TotalWeight,
		"expires":      p.p.Expires,
		"status":       p.p.Status,
	}
}

func (p Proposal) Resource() *hal.Resource {
	id := strconv.FormatUint(p.p.ID, 10)

	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("votes", hal.NewLink(strings.Replace(URLProposalVotes, "{id}", id, -1)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("threshold", hal.NewLink(strings.Replace(URLProposalThreshold, "{id}", id, -1)))
	return r
}

func (p Proposal) LinkSelf() string {
	id := strconv.FormatUint(p.p.ID, 10)
	return strings.Replace(URLProposal, "{id}", id, -1)
}

package resource

import (
	"github.com/nvellon/hal"

	"conclave.network/conclave/lib/voter"
)

type Voter struct {
	v voter.Voter
}

func NewVoter(v voter.Voter) *Voter {
	return &Voter{v: v}
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"address": v.v.Address,
		"weight":  v.v.Weight,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("voters", hal.NewLink(URLVoters))
	return r
}

func (v Voter) LinkSelf() string {
	return URLVoters + "/" + v.v.Address
}

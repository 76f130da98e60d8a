package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"conclave.network/conclave/lib/governance"
)

type ThresholdState struct {
	ts governance.ThresholdState
}

func NewThresholdState(ts governance.ThresholdState) *ThresholdState {
	return &ThresholdState{ts: ts}
}

func (t ThresholdState) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id":  t.ts.ProposalID,
		"threshold":    t.ts.Threshold,
		"total_weight": t.ts.TotalWeight,
		"tally":        t.ts.Tally,
		"status":       t.ts.Status,
		"expires":      t.ts.Expires,
	}
}

func (t ThresholdState) Resource() *hal.Resource {
	id := strconv.FormatUint(t.ts.ProposalID, 10)

	r := hal.NewResource(t, t.LinkSelf())
	r.AddLink("proposal", hal.NewLink(strings.Replace(URLProposal, "{id}", id, -1)))
	return r
}

func (t ThresholdState) LinkSelf() string {
	id := strconv.FormatUint(t.ts.ProposalID, 10)
	return strings.Replace(URLProposalThreshold, "{id}", id, -1)
}

package voting

import (
	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/errors"
)

type ThresholdType string

const (
	AbsoluteCount      ThresholdType = "absolute-count"
	AbsolutePercentage ThresholdType = "absolute-percentage"
	ThresholdQuorum    ThresholdType = "threshold-quorum"
)

// Threshold is the rule converting a weight tally into a pass/reject
// outcome. It is a closed tagged variant; the supported policies are
// fixed and each must stay auditable, so evaluation is a pure function
// over the tally instead of dynamic dispatch.
//
//  * AbsoluteCount: `Weight` yes-weight passes.
//  * AbsolutePercentage: `Percent`% of non-abstaining weight passes.
//  * ThresholdQuorum: `Quorum`% of total weight must vote at all, then
//    `Percent`% of the non-abstaining weight must be yes.
type Threshold struct {
	Type    ThresholdType `json:"type"`
	Weight  uint64        `json:"weight,omitempty"`
	Percent uint64        `json:"percent,omitempty"`
	Quorum  uint64        `json:"quorum,omitempty"`
}

func NewAbsoluteCount(weight uint64) Threshold {
	return Threshold{Type: AbsoluteCount, Weight: weight}
}

func NewAbsolutePercentage(percent uint64) Threshold {
	return Threshold{Type: AbsolutePercentage, Percent: percent}
}

func NewThresholdQuorum(percent, quorum uint64) Threshold {
	return Threshold{Type: ThresholdQuorum, Percent: percent, Quorum: quorum}
}

func (t Threshold) String() string {
	return string(common.MustMarshalJSON(t))
}

// Validate checks the threshold is satisfiable against the registry's
// total weight. An unsatisfiable threshold fails engine construction.
func (t Threshold) Validate(totalWeight uint64) error {
	switch t.Type {
	case AbsoluteCount:
		if t.Weight < 1 || t.Weight > totalWeight {
			return errors.InvalidThreshold.Clone().SetData("weight", t.Weight)
		}
	case AbsolutePercentage:
		if t.Percent < 1 || t.Percent > 100 {
			return errors.InvalidThreshold.Clone().SetData("percent", t.Percent)
		}
	case ThresholdQuorum:
		if t.Percent < 1 || t.Percent > 100 {
			return errors.InvalidThreshold.Clone().SetData("percent", t.Percent)
		}
		if t.Quorum < 1 || t.Quorum > 100 {
			return errors.InvalidThreshold.Clone().SetData("quorum", t.Quorum)
		}
	default:
		return errors.InvalidThreshold.Clone().SetData("type", string(t.Type))
	}

	return nil
}

// weightNeeded rounds up; a bare majority of 3 out of a pool of 5 at 50%
// needs 3, not 2.
func weightNeeded(pool, percent uint64) uint64 {
	return (pool*percent + 99) / 100
}

// Evaluate maps the current tally to OPEN, PASSED or REJECTED. PASSED and
// REJECTED returned here are decisions for the engine to persist; the
// engine keeps PASSED sticky by never re-evaluating a decided proposal.
//
// Rejection before expiry is an early exit: it triggers only once the
// weight of voters who have not yet voted cannot lift yes-weight over the
// threshold. At expiry every undecided proposal is rejected.
func (t Threshold) Evaluate(tally Tally, totalWeight uint64, expired bool) Status {
	switch t.Type {
	case AbsoluteCount:
		if tally.Yes >= t.Weight {
			return PASSED
		}
		if tally.Opposition()+tally.Abstain > totalWeight-t.Weight {
			return REJECTED
		}

	case AbsolutePercentage:
		pool := totalWeight - tally.Abstain
		needed := weightNeeded(pool, t.Percent)
		if tally.Yes >= needed {
			return PASSED
		}
		if tally.Opposition() > pool-needed {
			return REJECTED
		}

	case ThresholdQuorum:
		quorum := weightNeeded(totalWeight, t.Quorum)
		if expired {
			if tally.Total() < quorum {
				return REJECTED
			}
			opinions := tally.Total() - tally.Abstain
			if tally.Yes >= weightNeeded(opinions, t.Percent) {
				return PASSED
			}
			return REJECTED
		}

		// before expiry, measure against everyone who could still vote
		pool := totalWeight - tally.Abstain
		needed := weightNeeded(pool, t.Percent)
		if tally.Total() >= quorum && tally.Yes >= needed {
			return PASSED
		}
		if tally.Opposition() > pool-needed {
			return REJECTED
		}
		return OPEN
	}

	if expired {
		return REJECTED
	}

	return OPEN
}

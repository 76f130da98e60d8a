package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var ProposalObserver = observable.New()
var BallotObserver = observable.New()

type Resource string

const (
	Proposal Resource = "proposal"
	Ballot   Resource = "ballot"
)

type Condition string

const (
	All        Condition = "*"
	Identifier Condition = "id"
	Proposer   Condition = "proposer"
	Voter      Condition = "voter"
)

type Event struct {
	resource  Resource
	condition Condition
	value     string
}

func NewCondition(resource Resource, condition Condition, values ...string) Event {
	var value string
	if len(values) > 0 {
		value = values[0]
	}

	return Event{
		resource:  resource,
		condition: condition,
		value:     value,
	}
}

func (e Event) String() string {
	s := string(e.resource) + "-"
	if e.condition == All {
		s += string(e.condition)
	} else {
		s += string(e.condition) + "=" + e.value
	}
	return s
}

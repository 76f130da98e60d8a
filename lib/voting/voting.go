package voting

import (
	"conclave.network/conclave/lib/errors"
)

// Choice is one voter's stance on a proposal. Veto counts as opposition
// for threshold arithmetic; Abstain counts toward quorum only.
type Choice string

const (
	YES     Choice = "YES"
	NO      Choice = "NO"
	ABSTAIN Choice = "ABSTAIN"
	VETO    Choice = "VETO"
)

func ParseChoice(s string) (Choice, error) {
	switch Choice(s) {
	case YES, NO, ABSTAIN, VETO:
		return Choice(s), nil
	}

	return "", errors.InvalidVoteChoice.Clone().SetData("choice", s)
}

// Status is the proposal lifecycle state. OPEN moves to PASSED or
// REJECTED, PASSED moves to EXECUTED; REJECTED and EXECUTED are terminal.
type Status string

const (
	OPEN     Status = "OPEN"
	PASSED   Status = "PASSED"
	REJECTED Status = "REJECTED"
	EXECUTED Status = "EXECUTED"
)

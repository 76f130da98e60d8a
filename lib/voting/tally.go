package voting

// Tally is the accumulated ballot weight per choice for one proposal. It
// is recomputed from the stored ballots on every use instead of being
// cached incrementally.
type Tally struct {
	Yes     uint64 `json:"yes"`
	No      uint64 `json:"no"`
	Abstain uint64 `json:"abstain"`
	Veto    uint64 `json:"veto"`
}

func (t *Tally) Add(choice Choice, weight uint64) {
	switch choice {
	case YES:
		t.Yes += weight
	case NO:
		t.No += weight
	case ABSTAIN:
		t.Abstain += weight
	case VETO:
		t.Veto += weight
	}
}

// Total is the weight of every cast ballot, counted toward quorum.
func (t Tally) Total() uint64 {
	return t.Yes + t.No + t.Abstain + t.Veto
}

// Opposition is the weight cast against the proposal.
func (t Tally) Opposition() uint64 {
	return t.No + t.Veto
}

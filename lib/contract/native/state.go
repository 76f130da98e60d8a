package native

// State is the sandbox's flat key-value store. Snapshot/Restore give the
// batch dispatch its all-or-nothing behavior.
type State struct {
	values map[string]uint64
}

func NewState() *State {
	return &State{values: map[string]uint64{}}
}

func (s *State) Get(key string) uint64 {
	return s.values[key]
}

func (s *State) Set(key string, value uint64) {
	s.values[key] = value
}

func (s *State) Snapshot() map[string]uint64 {
	snapshot := make(map[string]uint64, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	return snapshot
}

func (s *State) Restore(snapshot map[string]uint64) {
	s.values = snapshot
}

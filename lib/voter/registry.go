package voter

import (
	"fmt"

	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/storage"
)

const VoterPrefix string = "vt-voter-"

// Voter is a registered identity with a fixed, non-zero weight. The
// address is opaque; the surrounding runtime is responsible for having
// authenticated it.
type Voter struct {
	Address string `json:"address"`
	Weight  uint64 `json:"weight"`
}

func (v Voter) String() string {
	return string(common.MustMarshalJSON(v))
}

// Registry is the fixed membership table. It is immutable after
// construction and shared by reference; total weight is computed once.
type Registry struct {
	voters  []Voter
	weights map[string]uint64
	total   uint64
}

func NewRegistry(voters []Voter) (*Registry, error) {
	if len(voters) < 1 {
		return nil, errors.EmptyRegistry
	}

	r := &Registry{
		voters:  make([]Voter, 0, len(voters)),
		weights: map[string]uint64{},
	}

	for _, v := range voters {
		if v.Weight < 1 {
			return nil, errors.ZeroWeight.Clone().SetData("address", v.Address)
		}
		if _, found := r.weights[v.Address]; found {
			return nil, errors.DuplicateVoter.Clone().SetData("address", v.Address)
		}

		r.voters = append(r.voters, v)
		r.weights[v.Address] = v.Weight
		r.total += v.Weight
	}

	return r, nil
}

func (r *Registry) WeightOf(address string) (uint64, bool) {
	w, found := r.weights[address]
	return w, found
}

func (r *Registry) IsVoter(address string) bool {
	_, found := r.weights[address]
	return found
}

func (r *Registry) TotalWeight() uint64 {
	return r.total
}

// Voters returns the members in registration order.
func (r *Registry) Voters() []Voter {
	voters := make([]Voter, len(r.voters))
	copy(voters, r.voters)
	return voters
}

func GetVoterKey(address string) string {
	return fmt.Sprintf("%s%s", VoterPrefix, address)
}

// Save persists the registry into the voter table for audit; saving the
// same registry again is a no-op.
func (r *Registry) Save(st *storage.LevelDBBackend) (err error) {
	for _, v := range r.voters {
		key := GetVoterKey(v.Address)

		var exists bool
		if exists, err = st.Has(key); err != nil {
			return
		}

		if exists {
			err = st.Set(key, v)
		} else {
			err = st.New(key, v)
		}
		if err != nil {
			return
		}
	}

	return
}

func GetVoter(st *storage.LevelDBBackend, address string) (v Voter, err error) {
	if err = st.Get(GetVoterKey(address), &v); err != nil {
		return
	}

	return
}

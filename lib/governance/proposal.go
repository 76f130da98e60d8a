package governance

import (
	"fmt"

	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/common/observer"
	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voting"
)

// Proposal is a named batch of opaque actions under a voting lifecycle.
// The threshold and total weight are frozen at creation and never re-read
// from the registry. The storage should support,
//  * find by `ID`
//  * get list in id order
//
// models
//  * 'id'
// 	- 'gp-proposal-<zero-padded ID>': `Proposal`
//  * counter
// 	- 'gp-counter': last assigned id
const (
	ProposalPrefix     string = "gp-proposal-"
	ProposalCounterKey string = "gp-counter"
)

type Proposal struct {
	ID          uint64            `json:"id"`
	Proposer    string            `json:"proposer"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Actions     []payload.Action  `json:"actions"`
	Threshold   voting.Threshold  `json:"threshold"`
	TotalWeight uint64            `json:"total_weight"`
	Expires     voting.Expiration `json:"expires"`
	Status      voting.Status     `json:"status"`
}

func (p *Proposal) String() string {
	return string(common.MustMarshalJSON(p))
}

func (p *Proposal) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(p)
	return
}

func GetProposalKey(id uint64) string {
	return fmt.Sprintf("%s%020d", ProposalPrefix, id)
}

// NextProposalID assigns the next id from the persisted counter; ids are
// unique and never reused. The counter lives in storage, not in process
// state, so multiple engines over the same store cannot collide.
func NextProposalID(st *storage.LevelDBBackend) (id uint64, err error) {
	var exists bool
	if exists, err = st.Has(ProposalCounterKey); err != nil {
		return
	}

	var last uint64
	if exists {
		if err = st.Get(ProposalCounterKey, &last); err != nil {
			return
		}
	}

	id = last + 1

	if exists {
		err = st.Set(ProposalCounterKey, id)
	} else {
		err = st.New(ProposalCounterKey, id)
	}

	return
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.ID)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
	}
	if err == nil {
		observer.ProposalObserver.Trigger(
			observer.NewCondition(observer.Proposal, observer.Identifier, fmt.Sprintf("%d", p.ID)).String(),
			p,
		)
	}

	return
}

func ExistProposal(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetProposalKey(id))
}

func GetProposal(st *storage.LevelDBBackend, id uint64) (p Proposal, err error) {
	if err = st.Get(GetProposalKey(id), &p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ProposalNotFound.Clone().SetData("id", id)
		}
		return
	}

	return
}

// GetProposals iterates proposals in id order; the zero-padded key makes
// the store's lexicographic order the id order.
func GetProposals(st *storage.LevelDBBackend, options storage.ListOptions) (func() (Proposal, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(ProposalPrefix, options)

	return (func() (Proposal, bool) {
			item, hasNext := iterFunc()
			if len(item.Value) < 1 {
				return Proposal{}, false
			}

			var p Proposal
			common.MustUnmarshalJSON(item.Value, &p)
			return p, hasNext
		}), (func() {
			closeFunc()
		})
}

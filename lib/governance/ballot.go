package governance

import (
	"fmt"

	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/common/observer"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voting"
)

// Ballot is one voter's recorded choice on one proposal, with the
// voter's weight frozen at voting time. At most one ballot may exist per
// (proposal, voter) pair; a ballot is never changed once stored.
//
// models
//  * 'proposal id' and 'voter'
// 	- 'gb-ballot-<zero-padded proposal id>-<voter address>': `Ballot`
const BallotPrefix string = "gb-ballot-"

type Ballot struct {
	ProposalID uint64        `json:"proposal_id"`
	Voter      string        `json:"voter"`
	Choice     voting.Choice `json:"choice"`
	Weight     uint64        `json:"weight"`
}

func (b *Ballot) String() string {
	return string(common.MustMarshalJSON(b))
}

func GetBallotKey(proposalID uint64, address string) string {
	return fmt.Sprintf("%s%020d-%s", BallotPrefix, proposalID, address)
}

func GetBallotKeyPrefix(proposalID uint64) string {
	return fmt.Sprintf("%s%020d-", BallotPrefix, proposalID)
}

// Save records the ballot; a second ballot for the same (proposal,
// voter) fails with AlreadyVoted, vote changes included.
func (b *Ballot) Save(st *storage.LevelDBBackend) (err error) {
	key := GetBallotKey(b.ProposalID, b.Voter)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}
	if exists {
		err = errors.AlreadyVoted.Clone().SetData("voter", b.Voter)
		return
	}

	if err = st.New(key, b); err == nil {
		observer.BallotObserver.Trigger(
			observer.NewCondition(observer.Ballot, observer.Voter, b.Voter).String(),
			b,
		)
		observer.BallotObserver.Trigger(
			observer.NewCondition(observer.Ballot, observer.Identifier, fmt.Sprintf("%d", b.ProposalID)).String(),
			b,
		)
	}

	return
}

func GetBallot(st *storage.LevelDBBackend, proposalID uint64, address string) (b Ballot, err error) {
	if err = st.Get(GetBallotKey(proposalID, address), &b); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.BallotNotFound.Clone().SetData("voter", address)
		}
		return
	}

	return
}

func GetBallots(st *storage.LevelDBBackend, proposalID uint64, options storage.ListOptions) (func() (Ballot, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(GetBallotKeyPrefix(proposalID), options)

	return (func() (Ballot, bool) {
			item, hasNext := iterFunc()
			if len(item.Value) < 1 {
				return Ballot{}, false
			}

			var b Ballot
			common.MustUnmarshalJSON(item.Value, &b)
			return b, hasNext
		}), (func() {
			closeFunc()
		})
}

// TallyBallots recomputes the tally by summing every stored ballot,
// trading a small read cost for auditability.
func TallyBallots(st *storage.LevelDBBackend, proposalID uint64) (tally voting.Tally, err error) {
	iterFunc, closeFunc := GetBallots(st, proposalID, nil)
	defer closeFunc()

	for {
		b, hasNext := iterFunc()
		if !hasNext {
			break
		}
		tally.Add(b.Choice, b.Weight)
	}

	return
}

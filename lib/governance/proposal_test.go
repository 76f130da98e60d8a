package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voting"
)

func TestNextProposalID(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	for expected := uint64(1); expected < 5; expected++ {
		id, err := NextProposalID(st)
		require.Nil(t, err)
		require.Equal(t, expected, id)
	}
}

func TestProposalSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p := &Proposal{
		ID:          1,
		Proposer:    "addr1",
		Title:       "mint tokens",
		Threshold:   voting.NewAbsoluteCount(2),
		TotalWeight: 3,
		Status:      voting.OPEN,
	}
	require.Nil(t, p.Save(st))

	fetched, err := GetProposal(st, 1)
	require.Nil(t, err)
	require.Equal(t, *p, fetched)

	// in-place status update
	p.Status = voting.PASSED
	require.Nil(t, p.Save(st))

	fetched, err = GetProposal(st, 1)
	require.Nil(t, err)
	require.Equal(t, voting.PASSED, fetched.Status)
}

func TestGetProposalUnknown(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetProposal(st, 99)
	require.NotNil(t, err)
	require.Equal(t, errors.ProposalNotFound.Code, err.(*errors.Error).Code)
}

func TestGetProposalsOrdering(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	for i := uint64(1); i <= 15; i++ {
		p := &Proposal{ID: i, Proposer: "addr1", Status: voting.OPEN}
		require.Nil(t, p.Save(st))
	}

	var fetched []uint64
	iterFunc, closeFunc := GetProposals(st, storage.NewDefaultListOptions(false, nil, 0))
	for {
		p, hasNext := iterFunc()
		if !hasNext {
			break
		}
		fetched = append(fetched, p.ID)
	}
	closeFunc()

	require.Equal(t, 15, len(fetched))
	for i, id := range fetched {
		require.Equal(t, uint64(i+1), id)
	}

	{ // reverse with limit
		iterFunc, closeFunc := GetProposals(st, storage.NewDefaultListOptions(true, nil, 1))
		p, _ := iterFunc()
		closeFunc()

		require.Equal(t, uint64(15), p.ID)
	}
}

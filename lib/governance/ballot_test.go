package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voting"
)

func TestBallotSaveOncePerVoter(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	b := &Ballot{ProposalID: 1, Voter: "addr1", Choice: voting.YES, Weight: 1}
	require.Nil(t, b.Save(st))

	// voting twice fails, vote changes included
	again := &Ballot{ProposalID: 1, Voter: "addr1", Choice: voting.NO, Weight: 1}
	err := again.Save(st)
	require.NotNil(t, err)
	require.Equal(t, errors.AlreadyVoted.Code, err.(*errors.Error).Code)

	// the stored ballot is unchanged
	fetched, err := GetBallot(st, 1, "addr1")
	require.Nil(t, err)
	require.Equal(t, voting.YES, fetched.Choice)

	// same voter on another proposal is fine
	other := &Ballot{ProposalID: 2, Voter: "addr1", Choice: voting.NO, Weight: 1}
	require.Nil(t, other.Save(st))
}

func TestGetBallotUnknown(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetBallot(st, 1, "addr1")
	require.NotNil(t, err)
	require.Equal(t, errors.BallotNotFound.Code, err.(*errors.Error).Code)
}

func TestTallyBallots(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ballots := []*Ballot{
		{ProposalID: 1, Voter: "addr1", Choice: voting.YES, Weight: 2},
		{ProposalID: 1, Voter: "addr2", Choice: voting.NO, Weight: 1},
		{ProposalID: 1, Voter: "addr3", Choice: voting.ABSTAIN, Weight: 3},
		{ProposalID: 1, Voter: "addr4", Choice: voting.VETO, Weight: 1},
		{ProposalID: 2, Voter: "addr1", Choice: voting.YES, Weight: 5},
	}
	for _, b := range ballots {
		require.Nil(t, b.Save(st))
	}

	tally, err := TallyBallots(st, 1)
	require.Nil(t, err)
	require.Equal(t, voting.Tally{Yes: 2, No: 1, Abstain: 3, Veto: 1}, tally)

	// ballots of other proposals do not leak into the tally
	tally, err = TallyBallots(st, 2)
	require.Nil(t, err)
	require.Equal(t, voting.Tally{Yes: 5}, tally)

	// empty tally for a proposal without ballots
	tally, err = TallyBallots(st, 3)
	require.Nil(t, err)
	require.Equal(t, voting.Tally{}, tally)
}

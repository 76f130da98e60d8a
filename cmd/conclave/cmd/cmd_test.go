package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/voting"
)

func TestParseFlagVoters(t *testing.T) {
	vs, err := parseFlagVoters("alice:2 bob:1")
	require.NoError(t, err)
	require.Equal(t, 2, len(vs))
	require.Equal(t, "alice", vs[0].Address)
	require.Equal(t, uint64(2), vs[0].Weight)

	_, err = parseFlagVoters("alice")
	require.Error(t, err)

	_, err = parseFlagVoters("alice:heavy")
	require.Error(t, err)
}

func TestParseFlagThreshold(t *testing.T) {
	{
		th, err := parseFlagThreshold("count:3")
		require.NoError(t, err)
		require.Equal(t, voting.NewAbsoluteCount(3), th)
	}
	{
		th, err := parseFlagThreshold("percent:66")
		require.NoError(t, err)
		require.Equal(t, voting.NewAbsolutePercentage(66), th)
	}
	{
		th, err := parseFlagThreshold("quorum:50,40")
		require.NoError(t, err)
		require.Equal(t, voting.NewThresholdQuorum(50, 40), th)
	}

	_, err := parseFlagThreshold("plurality:1")
	require.Error(t, err)

	_, err = parseFlagThreshold("66")
	require.Error(t, err)
}

func TestParseFlagVotingPeriod(t *testing.T) {
	{
		d, err := parseFlagVotingPeriod("height:100")
		require.NoError(t, err)
		require.Equal(t, voting.NewHeightDuration(100), d)
	}
	{
		d, err := parseFlagVotingPeriod("time:2h")
		require.NoError(t, err)
		require.Equal(t, voting.NewTimeDuration(7200), d)
	}

	_, err := parseFlagVotingPeriod("time:10ms")
	require.Error(t, err)

	_, err = parseFlagVotingPeriod("blocks:5")
	require.Error(t, err)
}

package voting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/errors"
)

func TestThresholdValidate(t *testing.T) {
	{ // absolute count must fit in the total weight
		require.Nil(t, NewAbsoluteCount(2).Validate(3))
		require.Nil(t, NewAbsoluteCount(3).Validate(3))

		err := NewAbsoluteCount(4).Validate(3)
		require.NotNil(t, err)
		require.Equal(t, errors.InvalidThreshold.Code, err.(*errors.Error).Code)

		require.NotNil(t, NewAbsoluteCount(0).Validate(3))
	}

	{ // percents must be within (0, 100]
		require.Nil(t, NewAbsolutePercentage(66).Validate(10))
		require.NotNil(t, NewAbsolutePercentage(0).Validate(10))
		require.NotNil(t, NewAbsolutePercentage(101).Validate(10))

		require.Nil(t, NewThresholdQuorum(50, 40).Validate(10))
		require.NotNil(t, NewThresholdQuorum(50, 0).Validate(10))
		require.NotNil(t, NewThresholdQuorum(0, 40).Validate(10))
	}

	{ // unknown type
		require.NotNil(t, Threshold{Type: "plurality"}.Validate(10))
	}
}

func TestAbsoluteCountEvaluate(t *testing.T) {
	th := NewAbsoluteCount(3)

	require.Equal(t, OPEN, th.Evaluate(Tally{Yes: 2}, 5, false))
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 3}, 5, false))
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 3, No: 2}, 5, false))

	// two yes plus one no leaves two undecided voters; still reachable
	require.Equal(t, OPEN, th.Evaluate(Tally{Yes: 2, No: 1}, 5, false))

	// three opposed means yes-weight can never reach three
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 1, No: 2, Veto: 1}, 5, false))

	// abstainers also shrink the reachable yes-weight
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 1, No: 1, Abstain: 2}, 5, false))

	// undecided at expiry is rejected
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 2}, 5, true))
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 3}, 5, true))
}

func TestAbsolutePercentageEvaluate(t *testing.T) {
	th := NewAbsolutePercentage(50)

	// 50% of 5 rounds up to 3
	require.Equal(t, OPEN, th.Evaluate(Tally{Yes: 2}, 5, false))
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 3}, 5, false))

	// abstaining shrinks the pool: 50% of 4 is 2
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 2, Abstain: 1}, 5, false))

	require.Equal(t, REJECTED, th.Evaluate(Tally{No: 3}, 5, false))
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 2, No: 1}, 5, true))
}

func TestThresholdQuorumEvaluate(t *testing.T) {
	th := NewThresholdQuorum(50, 40)

	// quorum is 40% of 10 = 4 cast weight
	require.Equal(t, OPEN, th.Evaluate(Tally{Yes: 3}, 10, false))

	// before expiry yes must clear 50% of the whole non-abstaining pool
	require.Equal(t, OPEN, th.Evaluate(Tally{Yes: 4}, 10, false))
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 5}, 10, false))

	// at expiry only cast opinions count: 4 yes of 4 cast
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 4}, 10, true))

	// quorum missed at expiry
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 3}, 10, true))

	// quorum met but yes below 50% of cast opinions
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 2, No: 3}, 10, true))

	// abstain counts toward quorum but not toward the opinion pool
	require.Equal(t, PASSED, th.Evaluate(Tally{Yes: 2, Abstain: 2}, 10, true))

	// overwhelming opposition rejects before expiry
	require.Equal(t, REJECTED, th.Evaluate(Tally{Yes: 1, No: 6}, 10, false))
}

func TestEvaluateMonotonicYes(t *testing.T) {
	// once passed, additional opposition weight never flips the outcome
	th := NewAbsoluteCount(2)

	tally := Tally{Yes: 2}
	require.Equal(t, PASSED, th.Evaluate(tally, 5, false))

	tally.Add(NO, 1)
	tally.Add(VETO, 2)
	require.Equal(t, PASSED, th.Evaluate(tally, 5, false))
}

package native

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/errors"
)

func TestSandboxDispatch(t *testing.T) {
	sb := NewSandbox()
	sb.Register("counter", CounterContract("counter"))

	err := sb.Dispatch([]payload.Action{
		{Target: "counter", Method: "increment"},
		{Target: "counter", Method: "increment"},
	})
	require.Nil(t, err)
	require.Equal(t, uint64(2), CounterValue(sb.State(), "counter"))
}

func TestSandboxUnknownTarget(t *testing.T) {
	sb := NewSandbox()

	err := sb.Dispatch([]payload.Action{{Target: "findme", Method: "increment"}})
	require.NotNil(t, err)
	require.Equal(t, errors.ExternalFailure.Code, err.(*errors.Error).Code)
}

func TestSandboxBatchAtomicity(t *testing.T) {
	sb := NewSandbox()
	sb.Register("counter", CounterContract("counter"))
	sb.Register("token", TokenContract("token"))

	badMint, _ := json.Marshal(map[string]interface{}{"recipient": "", "amount": 10})

	// the second action fails, so the first increment must not stick
	err := sb.Dispatch([]payload.Action{
		{Target: "counter", Method: "increment"},
		{Target: "token", Method: "mint", Args: badMint},
	})
	require.NotNil(t, err)
	require.Equal(t, uint64(0), CounterValue(sb.State(), "counter"))
}

func TestTokenMint(t *testing.T) {
	sb := NewSandbox()
	sb.Register("token", TokenContract("token"))

	mint, _ := json.Marshal(map[string]interface{}{"recipient": "recipient", "amount": 1000})
	err := sb.Dispatch([]payload.Action{{Target: "token", Method: "mint", Args: mint}})
	require.Nil(t, err)
	require.Equal(t, uint64(1000), TokenBalance(sb.State(), "token", "recipient"))
}

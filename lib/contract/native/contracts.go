package native

import (
	"encoding/json"
	"fmt"
)

// Built-in contracts for downstream targets controlled by a governance
// engine: a counter and a mintable token ledger. They stand in for
// arbitrary external contracts; the engine itself never knows their
// schemas.

func CounterContract(address string) map[string]ExecFunc {
	countKey := fmt.Sprintf("%s-count", address)

	return map[string]ExecFunc{
		"increment": func(state *State, args json.RawMessage) error {
			state.Set(countKey, state.Get(countKey)+1)
			return nil
		},
		"reset": func(state *State, args json.RawMessage) error {
			var v struct {
				Count uint64 `json:"count"`
			}
			if err := json.Unmarshal(args, &v); err != nil {
				return err
			}
			state.Set(countKey, v.Count)
			return nil
		},
	}
}

func CounterValue(state *State, address string) uint64 {
	return state.Get(fmt.Sprintf("%s-count", address))
}

func TokenContract(address string) map[string]ExecFunc {
	balanceKey := func(holder string) string {
		return fmt.Sprintf("%s-balance-%s", address, holder)
	}

	return map[string]ExecFunc{
		"mint": func(state *State, args json.RawMessage) error {
			var v struct {
				Recipient string `json:"recipient"`
				Amount    uint64 `json:"amount"`
			}
			if err := json.Unmarshal(args, &v); err != nil {
				return err
			}
			if len(v.Recipient) < 1 {
				return fmt.Errorf("empty recipient")
			}
			if v.Amount < 1 {
				return fmt.Errorf("zero mint amount")
			}

			state.Set(balanceKey(v.Recipient), state.Get(balanceKey(v.Recipient))+v.Amount)
			return nil
		},
	}
}

func TokenBalance(state *State, address, holder string) uint64 {
	return state.Get(fmt.Sprintf("%s-balance-%s", address, holder))
}

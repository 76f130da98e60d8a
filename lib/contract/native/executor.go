package native

import (
	"encoding/json"
	"sync"

	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/errors"
)

// ExecFunc handles one method call against a contract's own key-value
// state. Mutations go through State, which the sandbox snapshots around
// every batch.
type ExecFunc func(state *State, args json.RawMessage) error

// Sandbox is an in-process execution environment holding registered
// contracts addressed by name. A whole action batch executes
// atomically: any failing action rolls back every prior effect of the
// batch before the aggregate failure is reported.
type Sandbox struct {
	sync.Mutex

	contracts map[string]map[string]ExecFunc
	state     *State
}

func NewSandbox() *Sandbox {
	return &Sandbox{
		contracts: map[string]map[string]ExecFunc{},
		state:     NewState(),
	}
}

func (sb *Sandbox) Register(address string, methods map[string]ExecFunc) {
	sb.Lock()
	defer sb.Unlock()

	sb.contracts[address] = methods
}

func (sb *Sandbox) State() *State {
	return sb.state
}

func (sb *Sandbox) Dispatch(actions []payload.Action) error {
	sb.Lock()
	defer sb.Unlock()

	snapshot := sb.state.Snapshot()

	for _, action := range actions {
		methods, found := sb.contracts[action.Target]
		if !found {
			sb.state.Restore(snapshot)
			return errors.ExternalFailure.Clone().SetData("target", action.Target)
		}

		f, found := methods[action.Method]
		if !found {
			sb.state.Restore(snapshot)
			return errors.ExternalFailure.Clone().
				SetData("target", action.Target).
				SetData("method", action.Method)
		}

		if err := f(sb.state, action.Args); err != nil {
			sb.state.Restore(snapshot)
			return errors.ExternalFailure.Clone().
				SetData("target", action.Target).
				SetData("method", action.Method).
				SetData("cause", err.Error())
		}
	}

	return nil
}

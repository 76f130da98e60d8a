package contract

import (
	"conclave.network/conclave/lib/contract/payload"
)

// Dispatcher submits a passed proposal's ordered action batch to the
// execution sandbox as a single atomic unit: either every action's
// effects are applied in order, or none are. The sandbox guarantees that
// atomicity; the caller only observes one aggregate result.
type Dispatcher interface {
	Dispatch(actions []payload.Action) error
}

package payload

import (
	"encoding/json"

	"conclave.network/conclave/lib/common"
)

// Action is one opaque instruction of a proposal's batch: a target
// contract address, a method name and raw arguments. The governance core
// never interprets any of it; the batch is handed verbatim to the
// execution sandbox.
type Action struct {
	Target string          `json:"target"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

func (a *Action) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(a)
	return
}

func (a *Action) Deserialize(encoded []byte) (err error) {
	err = common.DecodeJSONValue(encoded, a)
	return
}

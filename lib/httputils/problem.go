package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"conclave.network/conclave/lib/errors"
)

// Problem follows the RFC7807 shape for machine readable error
// responses.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	p := NewStatusProblem(status)

	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://conclave.network/problems/%d", e.Code)
		p.Detail = e.Message
		p.Code = e.Code
		if len(e.Data) > 0 {
			p.Data = e.Data
		}
	} else {
		p.Detail = err.Error()
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

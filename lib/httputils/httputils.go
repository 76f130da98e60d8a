package httputils

import (
	"net/http"

	"conclave.network/conclave/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		100: 404,
		101: 409,
		102: 500,
		110: 400,
		111: 400,
		112: 400,
		113: 400,
		114: 400,
		120: 403,
		121: 404,
		122: 404,
		123: 409,
		124: 409,
		125: 410,
		126: 409,
		127: 400,
		130: 500,
		140: 400,
		141: 400,
		142: 400,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return 400
	}
	return 500
}

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"conclave.network/conclave/lib/contract/native"
	"conclave.network/conclave/lib/governance"
	"conclave.network/conclave/lib/voting"
)

func prepareAPIServer(threshold voting.Threshold, weights ...uint64) (*httptest.Server, *governance.Engine, *native.Sandbox, *governance.TestClock) {
	engine, sandbox, clock := governance.TestMakeEngine(threshold, voting.NewHeightDuration(10), weights...)

	apiHandler := NewNetworkHandlerAPI(engine, "")

	router := mux.NewRouter()
	apiHandler.AddAPIHandlers(router)
	ts := httptest.NewServer(router)

	return ts, engine, sandbox, clock
}

func request(ts *httptest.Server, url string, streaming bool) (io.ReadCloser, error) {
	url = ts.URL + url
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func post(ts *httptest.Server, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest("POST", ts.URL+url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return ts.Client().Do(req)
}

package api

import (
	"bufio"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/api/resource"
	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/contract/native"
	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/governance"
	"conclave.network/conclave/lib/voting"
)

func mustReadAll(t *testing.T, body io.ReadCloser) []byte {
	defer body.Close()
	readByte, err := ioutil.ReadAll(bufio.NewReader(body))
	require.NoError(t, err)
	return readByte
}

func TestAPIProposalLifecycle(t *testing.T) {
	ts, engine, sandbox, _ := prepareAPIServer(voting.NewAbsoluteCount(2), 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	{ // create
		body := common.MustMarshalJSON(ProposalRequest{
			Proposer: "addr1",
			Title:    "increment",
			Actions:  []payload.Action{governance.TestIncrementAction()},
		})
		resp, err := post(ts, "/v1/proposals", body)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, resp.Body), &recv)
		require.Equal(t, float64(1), recv["id"])
		require.Equal(t, string(voting.OPEN), recv["status"])
	}

	{ // detail
		url := strings.Replace(resource.URLProposal, "{id}", "1", -1)
		respBody, err := request(ts, url, false)
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
		require.Equal(t, "addr1", recv["proposer"])
	}

	{ // vote to pass
		body := common.MustMarshalJSON(VoteRequest{Voter: "addr2", Choice: "YES"})
		resp, err := post(ts, "/v1/proposals/1/votes", body)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, resp.Body), &recv)
		require.Equal(t, string(voting.PASSED), recv["status"])
	}

	{ // execute
		resp, err := post(ts, "/v1/proposals/1/execute", common.MustMarshalJSON(SenderRequest{Sender: "addr1"}))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, resp.Body), &recv)
		require.Equal(t, string(voting.EXECUTED), recv["status"])
		require.Equal(t, uint64(1), native.CounterValue(sandbox.State(), "counter"))
	}

	{ // votes list
		url := strings.Replace(resource.URLProposalVotes, "{id}", "1", -1)
		respBody, err := request(ts, url, false)
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, 2, len(records))
	}

	{ // single vote
		url := strings.Replace(strings.Replace(resource.URLProposalVote, "{id}", "1", -1), "{address}", "addr2", -1)
		respBody, err := request(ts, url, false)
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
		require.Equal(t, string(voting.YES), recv["choice"])
	}
}

func TestAPIErrors(t *testing.T) {
	ts, engine, _, _ := prepareAPIServer(voting.NewAbsoluteCount(2), 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	{ // unknown proposal
		req, _ := http.NewRequest("GET", ts.URL+"/v1/proposals/99", nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	{ // proposer outside the registry
		body := common.MustMarshalJSON(ProposalRequest{
			Proposer: "stranger",
			Title:    "findme",
			Actions:  []payload.Action{governance.TestIncrementAction()},
		})
		resp, err := post(ts, "/v1/proposals", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	{ // malformed vote choice
		_, err := engine.Propose("addr1", "findme", "", []payload.Action{governance.TestIncrementAction()}, nil)
		require.NoError(t, err)

		body := common.MustMarshalJSON(VoteRequest{Voter: "addr2", Choice: "MAYBE"})
		resp, err := post(ts, "/v1/proposals/1/votes", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	{ // duplicate vote
		body := common.MustMarshalJSON(VoteRequest{Voter: "addr1", Choice: "YES"})
		resp, err := post(ts, "/v1/proposals/1/votes", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}
}

func TestAPIClose(t *testing.T) {
	ts, engine, _, clock := prepareAPIServer(voting.NewAbsoluteCount(2), 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	_, err := engine.Propose("addr1", "findme", "", []payload.Action{governance.TestIncrementAction()}, nil)
	require.NoError(t, err)

	{ // not expired yet
		resp, err := post(ts, "/v1/proposals/1/close", common.MustMarshalJSON(SenderRequest{Sender: "addr2"}))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}

	clock.AdvanceHeight(10)

	{
		resp, err := post(ts, "/v1/proposals/1/close", common.MustMarshalJSON(SenderRequest{Sender: "addr2"}))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, resp.Body), &recv)
		require.Equal(t, string(voting.REJECTED), recv["status"])
	}
}

func TestAPIVoters(t *testing.T) {
	ts, engine, _, _ := prepareAPIServer(voting.NewAbsoluteCount(2), 2, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	respBody, err := request(ts, resource.URLVoters, false)
	require.NoError(t, err)

	recv := make(map[string]interface{})
	common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
	records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 3, len(records))

	first := records[0].(map[string]interface{})
	require.Equal(t, "addr1", first["address"])
	require.Equal(t, float64(2), first["weight"])
}

func TestAPIProposalsPagination(t *testing.T) {
	ts, engine, _, _ := prepareAPIServer(voting.NewAbsoluteCount(3), 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	for i := 0; i < 3; i++ {
		_, err := engine.Propose("addr1", "findme", "", []payload.Action{governance.TestIncrementAction()}, nil)
		require.NoError(t, err)
	}

	{
		respBody, err := request(ts, "/v1/proposals?limit=2", false)
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, 2, len(records))

		links := recv["_links"].(map[string]interface{})
		require.NotEmpty(t, links["next"])
	}

	{ // reverse order puts the newest proposal first
		respBody, err := request(ts, "/v1/proposals?reverse=true", false)
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)
		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, 3, len(records))
		require.Equal(t, float64(3), records[0].(map[string]interface{})["id"])
	}

	{ // limit above the maximum is rejected
		req, _ := http.NewRequest("GET", ts.URL+"/v1/proposals?limit=1000", nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAPIThresholdState(t *testing.T) {
	ts, engine, _, _ := prepareAPIServer(voting.NewThresholdQuorum(50, 40), 1, 1, 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	_, err := engine.Propose("addr1", "findme", "", []payload.Action{governance.TestIncrementAction()}, nil)
	require.NoError(t, err)
	require.NoError(t, engine.Vote("addr2", 1, voting.ABSTAIN))

	url := strings.Replace(resource.URLProposalThreshold, "{id}", "1", -1)
	respBody, err := request(ts, url, false)
	require.NoError(t, err)

	recv := make(map[string]interface{})
	common.MustUnmarshalJSON(mustReadAll(t, respBody), &recv)

	require.Equal(t, float64(5), recv["total_weight"])
	tally := recv["tally"].(map[string]interface{})
	require.Equal(t, float64(1), tally["yes"])
	require.Equal(t, float64(1), tally["abstain"])
}

func TestAPIProposalStream(t *testing.T) {
	ts, engine, _, _ := prepareAPIServer(voting.NewAbsoluteCount(2), 1, 1, 1)
	defer engine.Storage().Close()
	defer ts.Close()

	id, err := engine.Propose("addr1", "findme", "", []payload.Action{governance.TestIncrementAction()}, nil)
	require.NoError(t, err)

	respBody, err := request(ts, "/v1/proposals/1", true)
	require.NoError(t, err)
	defer respBody.Close()

	reader := bufio.NewReader(respBody)

	// first chunk is the current state
	line, err := reader.ReadBytes('\n')
	require.NoError(t, err)

	var recv map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &recv))
	require.Equal(t, string(voting.OPEN), recv["status"])

	// a passing vote pushes the updated proposal
	require.NoError(t, engine.Vote("addr2", id, voting.YES))

	line, err = reader.ReadBytes('\n')
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(line, &recv))
	require.Equal(t, string(voting.PASSED), recv["status"])
}

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musetix/polls/internal/core/domain"
)

func postJSON(t *testing.T, app *TestApp, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Server.Client().Post(app.Server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// TestPollFlow covers the full lifecycle against a real Redis:
// create -> get -> vote -> tally -> listing.
func TestPollFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Step 1: health reflects a reachable store
	resp, err := app.Server.Client().Get(app.Server.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Step 2: create a poll
	resp = postJSON(t, app, "/polls/create", map[string]any{
		"question": "Best color?",
		"options":  []string{"Red", "Blue"},
		"duration": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	pollID, ok := body["pollId"].(string)
	require.True(t, ok)

	// Step 3: vote Red twice, Blue once
	for _, option := range []string{"Red", "Red", "Blue"} {
		resp = postJSON(t, app, "/polls/vote", map[string]any{
			"pollId": pollID,
			"option": option,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Step 4: read the tallies back
	resp, err = app.Server.Client().Get(app.Server.URL + "/polls/get?id=" + pollID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	poll, ok := decodeBody(t, resp)["poll"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Red", "Blue"}, poll["options"])
	assert.Equal(t, []any{float64(2), float64(1)}, poll["votes"])
	assert.Equal(t, float64(3), poll["totalVotes"])

	// Step 5: the poll shows up as active, not completed
	resp, err = app.Server.Client().Get(app.Server.URL + "/polls/list?type=active")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	active := decodeBody(t, resp)["polls"].([]any)
	require.Len(t, active, 1)
	assert.Equal(t, pollID, active[0].(map[string]any)["id"])

	resp, err = app.Server.Client().Get(app.Server.URL + "/polls/list?type=completed")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody(t, resp)["polls"])
}

// TestCompletedPolls seeds an already-expired poll directly through the
// repository and checks classification and the vote freeze.
func TestCompletedPolls(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	now := time.Now()
	expired := &domain.Poll{
		ID:        "poll:expired",
		Question:  "Was it worth it?",
		Options:   []string{"Yes", "No"},
		Votes:     []int64{0, 0},
		CreatedAt: now.Add(-2 * time.Hour),
		EndsAt:    now.Add(-time.Hour),
	}
	require.NoError(t, app.Repo.Save(context.Background(), expired))

	resp, err := app.Server.Client().Get(app.Server.URL + "/polls/list?type=completed")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := decodeBody(t, resp)["polls"].([]any)
	require.Len(t, completed, 1)
	assert.Equal(t, "poll:expired", completed[0].(map[string]any)["id"])

	resp = postJSON(t, app, "/polls/vote", map[string]any{
		"pollId": "poll:expired",
		"option": "Yes",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "poll has ended", decodeBody(t, resp)["error"])
}

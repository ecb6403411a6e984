package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dstone/movie-club-server/internal/testutil"
	"github.com/dstone/movie-club-server/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketHandler_RejectsUnauthenticated(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, resp, err := gorillaWS.DefaultDialer.Dial(ts.WebSocketURL(tt.token), nil)
			if conn != nil {
				conn.Close()
			}
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestWebSocketHandler_BroadcastsPickEvents(t *testing.T) {
	ts := testutil.NewTestServer(t)

	picker, pickerToken := testutil.NewUserBuilder().WithName("ws-picker").BuildAndAuthenticate(t, ts)
	_, watcherToken := testutil.NewUserBuilder().WithName("ws-watcher").BuildAndAuthenticate(t, ts)
	testutil.NewSeasonBuilder().WithAvailable(picker.ID).Build(t, ts.DB.DB)

	client := testutil.NewWSClient(t, ts.WebSocketURL(watcherToken))

	body := map[string]interface{}{"tmdbId": 603, "title": "The Matrix"}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/picks/"), body, pickerToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	event := client.ExpectEvent(websocket.EventTypePickSubmitted, 5*time.Second)
	var submitted websocket.PickSubmittedPayload
	testutil.DecodePayload(t, event, &submitted)
	assert.Equal(t, "ws-picker", submitted.UserName)
	assert.NotZero(t, event.Timestamp)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/picks/"), nil, pickerToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	event = client.ExpectEvent(websocket.EventTypePickWithdrawn, 5*time.Second)
	var withdrawn websocket.PickWithdrawnPayload
	testutil.DecodePayload(t, event, &withdrawn)
	assert.Equal(t, "ws-picker", withdrawn.UserName)
}

func TestWebSocketHandler_BroadcastsSeasonLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().WithName("ws-admin").AsAdmin().BuildAndAuthenticate(t, ts)
	_, memberToken := testutil.NewUserBuilder().WithName("ws-member").BuildAndAuthenticate(t, ts)

	client := testutil.NewWSClient(t, ts.WebSocketURL(memberToken))

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/admin/season/reset"), nil, adminToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	event := client.ExpectEvent(websocket.EventTypeSeasonReset, 5*time.Second)
	var reset websocket.SeasonResetPayload
	testutil.DecodePayload(t, event, &reset)
	assert.Equal(t, 1, reset.SeasonNumber)
	assert.Len(t, reset.PickerNames, 2)
	assert.Contains(t, reset.PickerNames, "ws-admin")
	assert.Contains(t, reset.PickerNames, "ws-member")

	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/admin/season/reveal"), nil, adminToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	event = client.ExpectEvent(websocket.EventTypePicksRevealed, 5*time.Second)
	var revealed websocket.PicksRevealedPayload
	testutil.DecodePayload(t, event, &revealed)
	assert.Equal(t, 1, revealed.SeasonNumber)
	assert.Empty(t, revealed.Revealed)
	assert.Equal(t, 2, revealed.RemainingPickers)
	assert.False(t, revealed.SeasonCompleted)
}

func TestWebSocketHandler_MultipleClientsReceiveBroadcast(t *testing.T) {
	ts := testutil.NewTestServer(t)

	picker, pickerToken := testutil.NewUserBuilder().WithName("ws-fanout").BuildAndAuthenticate(t, ts)
	testutil.NewSeasonBuilder().WithAvailable(picker.ID).Build(t, ts.DB.DB)

	first := testutil.NewWSClient(t, ts.WebSocketURL(pickerToken))
	second := testutil.NewWSClient(t, ts.WebSocketURL(pickerToken))

	body := map[string]interface{}{"tmdbId": 680, "title": "Pulp Fiction"}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/picks/"), body, pickerToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, client := range []*testutil.WSClient{first, second} {
		event := client.ExpectEvent(websocket.EventTypePickSubmitted, 5*time.Second)
		var payload websocket.PickSubmittedPayload
		testutil.DecodePayload(t, event, &payload)
		assert.Equal(t, "ws-fanout", payload.UserName)
	}
}

package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmadera/habit-tracker-backend/internal/testutil"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketHandler_HabitEvents(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	conn, resp, err := ws.DefaultDialer.Dial(ts.WebSocketURL(token), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Let the hub process the registration before publishing
	time.Sleep(100 * time.Millisecond)

	createResp := doJSON(t, http.MethodPost, ts.APIURL("/habits"), token, map[string]string{
		"name": "Stretch",
	})
	defer createResp.Body.Close()
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string `json:"type"`
		HabitID string `json:"habitId"`
		Habit   struct {
			Name string `json:"name"`
		} `json:"habit"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "habit.created", event.Type)
	assert.NotEmpty(t, event.HabitID)
	assert.Equal(t, "Stretch", event.Habit.Name)

	// A delete produces an event without a habit body
	deleteResp := doJSON(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/habits/%s", event.HabitID)), token, nil)
	defer deleteResp.Body.Close()
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)

	var deleted struct {
		Type    string `json:"type"`
		HabitID string `json:"habitId"`
	}
	require.NoError(t, json.Unmarshal(data, &deleted))
	assert.Equal(t, "habit.deleted", deleted.Type)
	assert.Equal(t, event.HabitID, deleted.HabitID)
}

func TestWebSocketHandler_RejectsBadToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		_, resp, err := ws.DefaultDialer.Dial(ts.WebSocketURL(""), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, resp, err := ws.DefaultDialer.Dial(ts.WebSocketURL("garbage"), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/dmadera/habit-tracker-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestHabitHandler_CreateAndList(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("create", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/habits"), token, map[string]string{
			"name":        "Drink water",
			"description": "8 glasses a day",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var habit domain.Habit
		testutil.AssertJSONResponse(t, resp, &habit)
		assert.Equal(t, "Drink water", habit.Name)
		assert.Equal(t, "8 glasses a day", habit.Description)
		assert.Empty(t, habit.CompletedDates)
	})

	t.Run("missing name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/habits"), token, map[string]string{
			"description": "no name",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list returns own habits", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/habits"), token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var habits []domain.Habit
		testutil.AssertJSONResponse(t, resp, &habits)
		require.Len(t, habits, 1)
		assert.Equal(t, "Drink water", habits[0].Name)
	})

	t.Run("list requires token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/habits"), "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHabitHandler_UpdateAndDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	habit := testutil.NewHabitBuilder().
		WithOwner(owner).
		WithName("Read").
		Build(t, ts.DB.DB)

	habitURL := ts.APIURL(fmt.Sprintf("/habits/%s", habit.ID))

	t.Run("update", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, habitURL, token, map[string]string{
			"name":        "Read more",
			"description": "30 minutes",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated domain.Habit
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "Read more", updated.Name)
		assert.Equal(t, "30 minutes", updated.Description)
	})

	t.Run("update with empty name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, habitURL, token, map[string]string{"name": "  "})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("other user's update yields not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, habitURL, otherToken, map[string]string{"name": "Hijack"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("other user's delete yields not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, habitURL, otherToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, habitURL, token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]string
		testutil.AssertJSONResponse(t, resp, &result)
		assert.NotEmpty(t, result["msg"])
	})

	t.Run("repeat delete yields not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, habitURL, token, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown habit id", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/habits/%s", uuid.New())), token, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHabitHandler_MarkAndProgress(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	habit := testutil.NewHabitBuilder().
		WithOwner(owner).
		WithName("Meditate").
		Build(t, ts.DB.DB)

	markURL := ts.APIURL(fmt.Sprintf("/habits/%s/mark", habit.ID))
	progressURL := ts.APIURL(fmt.Sprintf("/habits/%s/progress", habit.ID))

	progressCount := func(t *testing.T) int {
		t.Helper()
		resp := doJSON(t, http.MethodGet, progressURL, token, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			CompletionCount int `json:"completionCount"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		return result.CompletionCount
	}

	t.Run("mark today", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, markURL, token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var marked domain.Habit
		testutil.AssertJSONResponse(t, resp, &marked)
		assert.Len(t, marked.CompletedDates, 1)

		assert.Equal(t, 1, progressCount(t))
	})

	t.Run("mark again un-marks", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, markURL, token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var unmarked domain.Habit
		testutil.AssertJSONResponse(t, resp, &unmarked)
		assert.Empty(t, unmarked.CompletedDates)

		assert.Equal(t, 0, progressCount(t))
	})

	t.Run("other user cannot mark", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, markURL, otherToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("other user cannot read progress", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, progressURL, otherToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("mark requires token", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, markURL, "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

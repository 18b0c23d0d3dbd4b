package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyMatchesHandler(t *testing.T) {
	t.Run("Returns computed matches for the caller", func(t *testing.T) {
		profiles, requester, candidates := newScenario()
		svc := newTestService(profiles)

		req := authedRequest(t, http.MethodGet, "/matches/me", nil, requester.ID, "user")
		w := httptest.NewRecorder()
		myMatchesHandler(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var matches []UserMatch
		require.NoError(t, json.NewDecoder(w.Body).Decode(&matches))
		require.Len(t, matches, 1)
		assert.Equal(t, candidates["A nearby tennis"].ID, matches[0].ID)
	})

	t.Run("Unknown caller is 404", func(t *testing.T) {
		profiles, _, _ := newScenario()
		svc := newTestService(profiles)

		req := authedRequest(t, http.MethodGet, "/matches/me", nil, uuid.New(), "user")
		w := httptest.NewRecorder()
		myMatchesHandler(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var errResp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, "user_not_found", errResp["error"])
	})

	t.Run("Missing token is 401", func(t *testing.T) {
		profiles, _, _ := newScenario()
		svc := newTestService(profiles)

		req := httptest.NewRequest(http.MethodGet, "/matches/me", nil)
		w := httptest.NewRecorder()
		myMatchesHandler(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Empty result is an empty JSON list", func(t *testing.T) {
		requester := User{
			ID: uuid.New(), IsAvailableNow: true, SearchRadiusKm: 10,
			SportIDs: []uuid.UUID{tennisID},
		}
		profiles := &fakeProfiles{users: []User{requester}}
		svc := newTestService(profiles)

		req := authedRequest(t, http.MethodGet, "/matches/me", nil, requester.ID, "user")
		w := httptest.NewRecorder()
		myMatchesHandler(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

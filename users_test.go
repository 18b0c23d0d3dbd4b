package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The self-mutation handlers talk to Postgres directly; these tests cover
// the paths that fail before any query runs.
func TestSelfMutationValidation(t *testing.T) {
	me := uuid.New()

	t.Run("Availability rejects wrong method", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, "/me/availability", nil, me, "user")
		w := httptest.NewRecorder()
		meAvailabilityHandler(nil, nil).ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("Availability rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/me/availability", bytes.NewBufferString("{"))
		token, err := issueToken(me, "user")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		meAvailabilityHandler(nil, nil).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Location rejects out-of-range coordinates", func(t *testing.T) {
		cases := []map[string]float64{
			{"latitude": 91, "longitude": 0},
			{"latitude": -91, "longitude": 0},
			{"latitude": 0, "longitude": 181},
			{"latitude": 0, "longitude": -181},
		}
		for _, body := range cases {
			req := authedRequest(t, http.MethodPatch, "/me/location", body, me, "user")
			w := httptest.NewRecorder()
			meLocationHandler(nil, nil).ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, "coords %v", body)
		}
	})

	t.Run("Sports rejects wrong method", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, "/me/sports", nil, me, "user")
		w := httptest.NewRecorder()
		meSportsHandler(nil, nil).ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("Unauthenticated caller is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/me/location", nil)
		w := httptest.NewRecorder()
		meLocationHandler(nil, nil).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

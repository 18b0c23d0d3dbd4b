package main

import (
	"log"
	"net/http"
)

// GET /matches/me — the match list for the authenticated user.
func myMatchesHandler(svc *MatchService) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		matches, err := svc.MatchesFor(r.Context(), callerID(r))
		if err == ErrNotFound {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		} else if err != nil {
			log.Println("Error computing matches:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		writeJSON(w, http.StatusOK, matches)
	})
}

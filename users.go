package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// Self-profile mutations that change match eligibility. Each one drops the
// caller's own cached match list: availability and location shift which
// candidates the caller sees, and which pools the caller appears in is
// handled by those other users' TTLs.

// PATCH /me/availability
func meAvailabilityHandler(db *sql.DB, cache *matchCache) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type AvailabilityUpdate struct {
			IsAvailableNow bool `json:"is_available_now"`
		}
		var body AvailabilityUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		me := callerID(r)
		_, err := db.ExecContext(r.Context(),
			`UPDATE users SET is_available_now = $2 WHERE id = $1`, me, body.IsAvailableNow)
		if err != nil {
			log.Println("Error updating availability:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		cache.invalidate(me)
		w.WriteHeader(http.StatusNoContent)
	})
}

// PATCH /me/location
func meLocationHandler(db *sql.DB, cache *matchCache) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type LocationUpdate struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		var body LocationUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Latitude < -90 || body.Latitude > 90 || body.Longitude < -180 || body.Longitude > 180 {
			writeError(w, http.StatusBadRequest, "invalid_coordinates")
			return
		}

		me := callerID(r)
		_, err := db.ExecContext(r.Context(),
			`UPDATE users SET latitude = $2, longitude = $3 WHERE id = $1`,
			me, body.Latitude, body.Longitude)
		if err != nil {
			log.Println("Error updating location:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		cache.invalidate(me)
		w.WriteHeader(http.StatusNoContent)
	})
}

// PUT /me/sports — replaces the caller's sport set in one transaction.
func meSportsHandler(db *sql.DB, cache *matchCache) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type SportsUpdate struct {
			SportIDs []uuid.UUID `json:"sport_ids"`
		}
		var body SportsUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		me := callerID(r)
		err := withTx(r.Context(), db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(`DELETE FROM user_sports WHERE user_id = $1`, me); err != nil {
				return err
			}
			for _, sportID := range body.SportIDs {
				if _, err := tx.Exec(
					`INSERT INTO user_sports (user_id, sport_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
					me, sportID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Println("Error updating sports:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		cache.invalidate(me)
		w.WriteHeader(http.StatusNoContent)
	})
}

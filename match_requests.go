package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// matchRequestStore owns match-request persistence. It is an interface so
// the invalidation contract of the handlers can be tested without Postgres.
type matchRequestStore interface {
	Create(ctx context.Context, req *MatchRequest) error
	Get(ctx context.Context, id uuid.UUID) (*MatchRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListIncoming(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error)
	ListOutgoing(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error)
	// RefsExist reports whether both users and the sport resolve.
	RefsExist(ctx context.Context, fromUserID, toUserID, sportID uuid.UUID) (bool, error)
}

type pgMatchRequests struct {
	db *sql.DB
}

func (p *pgMatchRequests) Create(ctx context.Context, req *MatchRequest) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO match_requests (id, from_user_id, to_user_id, sport_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.ID, req.FromUserID, req.ToUserID, req.SportID, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert match request: %w", err)
	}
	return nil
}

func (p *pgMatchRequests) Get(ctx context.Context, id uuid.UUID) (*MatchRequest, error) {
	var req MatchRequest
	err := p.db.QueryRowContext(ctx, `
		SELECT id, from_user_id, to_user_id, sport_id, status, created_at
		FROM match_requests
		WHERE id = $1
	`, id).Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.SportID, &req.Status, &req.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load match request %s: %w", id, err)
	}
	return &req, nil
}

func (p *pgMatchRequests) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE match_requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update match request %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *pgMatchRequests) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM match_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match request %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *pgMatchRequests) list(ctx context.Context, where string, args ...interface{}) ([]MatchRequest, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, from_user_id, to_user_id, sport_id, status, created_at
		FROM match_requests
		WHERE `+where+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list match requests: %w", err)
	}
	defer rows.Close()

	requests := make([]MatchRequest, 0)
	for rows.Next() {
		var req MatchRequest
		if err := rows.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.SportID, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (p *pgMatchRequests) ListIncoming(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error) {
	return p.list(ctx, "to_user_id = $1", userID)
}

func (p *pgMatchRequests) ListOutgoing(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error) {
	return p.list(ctx, "from_user_id = $1", userID)
}

func (p *pgMatchRequests) ListAccepted(ctx context.Context, userID uuid.UUID) ([]MatchRequest, error) {
	return p.list(ctx, "(from_user_id = $1 OR to_user_id = $1) AND status = $2", userID, StatusAccepted)
}

func (p *pgMatchRequests) RefsExist(ctx context.Context, fromUserID, toUserID, sportID uuid.UUID) (bool, error) {
	var ok bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
		   AND EXISTS (SELECT 1 FROM users WHERE id = $2)
		   AND EXISTS (SELECT 1 FROM sports WHERE id = $3)
	`, fromUserID, toUserID, sportID).Scan(&ok)
	return ok, err
}

// invalidateBoth drops both participants' cached match lists. Every
// successful match-request mutation MUST call this before reporting
// success; skipping it serves stale match lists for up to the TTL window.
func invalidateBoth(cache *matchCache, req *MatchRequest) {
	cache.invalidate(req.FromUserID)
	cache.invalidate(req.ToUserID)
}

// POST /match/request
func sendMatchRequestHandler(store matchRequestStore, cache *matchCache) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type SendRequest struct {
			FromUserID uuid.UUID `json:"from_user_id"`
			ToUserID   uuid.UUID `json:"to_user_id"`
			SportID    uuid.UUID `json:"sport_id"`
		}

		var body SendRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		ok, err := store.RefsExist(r.Context(), body.FromUserID, body.ToUserID, body.SportID)
		if err != nil {
			log.Println("Error validating match request refs:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_user_or_sport_id")
			return
		}

		req := &MatchRequest{
			ID:         uuid.New(),
			FromUserID: body.FromUserID,
			ToUserID:   body.ToUserID,
			SportID:    body.SportID,
			Status:     StatusPending,
			CreatedAt:  time.Now().UTC(),
		}
		if err := store.Create(r.Context(), req); err != nil {
			log.Println("Error creating match request:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		invalidateBoth(cache, req)
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": req.ID})
	})
}

// GET /match/incoming?user_id=... , /match/outgoing?user_id=... ,
// /match/history?user_id=...
func listMatchRequestsHandler(store matchRequestStore, which string) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id")
			return
		}

		var requests []MatchRequest
		switch which {
		case "incoming":
			requests, err = store.ListIncoming(r.Context(), userID)
		case "outgoing":
			requests, err = store.ListOutgoing(r.Context(), userID)
		default:
			requests, err = store.ListAccepted(r.Context(), userID)
		}
		if err != nil {
			log.Println("Error listing match requests:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		writeJSON(w, http.StatusOK, requests)
	})
}

// matchRequestRouter dispatches /match/{id} and /match/{id}/cancel.
func matchRequestRouter(store matchRequestStore, cache *matchCache) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] != "match" {
			http.NotFound(w, r)
			return
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}

		switch {
		case len(parts) == 2 && r.Method == http.MethodPatch:
			updateMatchRequestStatus(w, r, store, cache, id)
		case len(parts) == 2 && r.Method == http.MethodDelete:
			deleteMatchRequest(w, r, store, cache, id)
		case len(parts) == 3 && parts[2] == "cancel" && r.Method == http.MethodPatch:
			cancelMatchRequest(w, r, store, cache, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
		}
	})
}

// PATCH /match/{id} with {"status": "Accepted"|"Rejected"}
func updateMatchRequestStatus(w http.ResponseWriter, r *http.Request, store matchRequestStore, cache *matchCache, id uuid.UUID) {
	type StatusUpdate struct {
		Status string `json:"status"`
	}
	var body StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if body.Status != StatusAccepted && body.Status != StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_match_request_status")
		return
	}

	req, err := store.Get(r.Context(), id)
	if err == ErrNotFound {
		writeError(w, http.StatusNotFound, "match_request_not_found")
		return
	} else if err != nil {
		log.Println("Error loading match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	if err := store.UpdateStatus(r.Context(), id, body.Status); err != nil {
		log.Println("Error updating match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	invalidateBoth(cache, req)
	writeJSON(w, http.StatusOK, map[string]string{"message": "match request updated"})
}

// PATCH /match/{id}/cancel — participant only.
func cancelMatchRequest(w http.ResponseWriter, r *http.Request, store matchRequestStore, cache *matchCache, id uuid.UUID) {
	req, err := store.Get(r.Context(), id)
	if err == ErrNotFound {
		writeError(w, http.StatusNotFound, "match_request_not_found")
		return
	} else if err != nil {
		log.Println("Error loading match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	me := callerID(r)
	if req.FromUserID != me && req.ToUserID != me {
		writeError(w, http.StatusForbidden, "not_a_participant")
		return
	}

	if err := store.UpdateStatus(r.Context(), id, StatusCancelled); err != nil {
		log.Println("Error cancelling match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	invalidateBoth(cache, req)
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /match/{id} — admin only.
func deleteMatchRequest(w http.ResponseWriter, r *http.Request, store matchRequestStore, cache *matchCache, id uuid.UUID) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "admin_only")
		return
	}

	req, err := store.Get(r.Context(), id)
	if err == ErrNotFound {
		writeError(w, http.StatusNotFound, "match_request_not_found")
		return
	} else if err != nil {
		log.Println("Error loading match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	if err := store.Delete(r.Context(), id); err != nil {
		log.Println("Error deleting match request:", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	invalidateBoth(cache, req)
	writeJSON(w, http.StatusOK, map[string]string{"message": "match request deleted"})
}

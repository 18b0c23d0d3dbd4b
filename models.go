package main

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user with the fields the matching engine
// cares about: availability, search radius, location and practiced sports.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	IsAvailableNow bool
	SearchRadiusKm int
	Latitude       float64
	Longitude      float64
	SportIDs       []uuid.UUID
}

// UserMatch is a computed match result. It is derived on demand and only
// ever lives inside the match cache, never in the database.
type UserMatch struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	IsAvailableNow bool        `json:"is_available_now"`
	SearchRadiusKm int         `json:"search_radius_km"`
	DistanceKm     float64     `json:"distance_km"`
	SharedSportIDs []uuid.UUID `json:"shared_sport_ids"`
}

// Match request lifecycle statuses.
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// MatchRequest is a request from one user to another to train a given sport
// together. Status transitions: Pending -> Accepted/Rejected via PATCH,
// Pending/Accepted -> Cancelled by either participant.
type MatchRequest struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	SportID    uuid.UUID `json:"sport_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an id does not resolve to a stored row.
var ErrNotFound = errors.New("not found")

// ProfileSource is the read side the matching engine depends on. The engine
// never writes through it; mutations happen elsewhere and announce
// themselves via cache invalidation.
type ProfileSource interface {
	// GetProfile returns the user with its sport-id set, or ErrNotFound.
	GetProfile(ctx context.Context, id uuid.UUID) (*User, error)
	// ListAvailableExcluding returns every user marked available now,
	// excluding the given id, each with its sport-id set.
	ListAvailableExcluding(ctx context.Context, id uuid.UUID) ([]User, error)
}

// pgProfiles reads users and their sports from Postgres.
type pgProfiles struct {
	db *sql.DB
}

func (p *pgProfiles) GetProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, email, is_available_now, search_radius_km, latitude, longitude
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.IsAvailableNow, &u.SearchRadiusKm, &u.Latitude, &u.Longitude)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}

	rows, err := p.db.QueryContext(ctx, `SELECT sport_id FROM user_sports WHERE user_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("load sports for %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var sportID uuid.UUID
		if err := rows.Scan(&sportID); err != nil {
			return nil, err
		}
		u.SportIDs = append(u.SportIDs, sportID)
	}
	return &u, rows.Err()
}

// ListAvailableExcluding loads the candidate pool with two queries (pool,
// then all their sports) and stitches them in memory, avoiding a round trip
// per candidate.
func (p *pgProfiles) ListAvailableExcluding(ctx context.Context, id uuid.UUID) ([]User, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, email, is_available_now, search_radius_km, latitude, longitude
		FROM users
		WHERE is_available_now = TRUE AND id <> $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	defer rows.Close()

	var pool []User
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAvailableNow, &u.SearchRadiusKm, &u.Latitude, &u.Longitude); err != nil {
			return nil, err
		}
		index[u.ID] = len(pool)
		pool = append(pool, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sportRows, err := p.db.QueryContext(ctx, `
		SELECT us.user_id, us.sport_id
		FROM user_sports us
		JOIN users u ON u.id = us.user_id
		WHERE u.is_available_now = TRUE AND u.id <> $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load candidate sports: %w", err)
	}
	defer sportRows.Close()
	for sportRows.Next() {
		var userID, sportID uuid.UUID
		if err := sportRows.Scan(&userID, &sportID); err != nil {
			return nil, err
		}
		if i, ok := index[userID]; ok {
			pool[i].SportIDs = append(pool[i].SportIDs, sportID)
		}
	}
	return pool, sportRows.Err()
}

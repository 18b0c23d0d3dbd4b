package main

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// MatchService computes match lists and keeps them warm in the match cache.
//
// A match is another user who is available now, shares at least one sport
// with the requester, and sits within the requester's search radius. The
// radius check is deliberately one-sided: the candidate's own radius is
// ignored. Pairs with an existing match request are not filtered out here;
// request mutations only influence results through cache invalidation.
type MatchService struct {
	profiles ProfileSource
	cache    *matchCache
	group    singleflight.Group
}

func newMatchService(profiles ProfileSource, cache *matchCache) *MatchService {
	return &MatchService{profiles: profiles, cache: cache}
}

// MatchesFor returns the match list for requesterID, serving from the cache
// when a fresh entry exists. Concurrent misses for the same requester are
// collapsed into one computation; an empty result is still a valid result
// and gets cached like any other.
//
// A computation that started before a concurrent invalidation may finish
// afterwards and re-populate the cache with pre-mutation data. That
// staleness is bounded by the TTL and accepted.
func (s *MatchService) MatchesFor(ctx context.Context, requesterID uuid.UUID) ([]UserMatch, error) {
	if cached, ok := s.cache.get(requesterID); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(requesterID.String(), func() (interface{}, error) {
		matches, err := s.compute(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		s.cache.set(requesterID, matches)
		return matches, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]UserMatch), nil
}

func (s *MatchService) compute(ctx context.Context, requesterID uuid.UUID) ([]UserMatch, error) {
	timer := prometheus.NewTimer(matchComputeDuration)
	defer timer.ObserveDuration()

	me, err := s.profiles.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	mySports := make(map[uuid.UUID]struct{}, len(me.SportIDs))
	for _, id := range me.SportIDs {
		mySports[id] = struct{}{}
	}

	pool, err := s.profiles.ListAvailableExcluding(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	matches := make([]UserMatch, 0, len(pool))
	for _, candidate := range pool {
		var shared []uuid.UUID
		for _, sportID := range candidate.SportIDs {
			if _, ok := mySports[sportID]; ok {
				shared = append(shared, sportID)
			}
		}
		if len(shared) == 0 {
			continue // no shared interest, not a match
		}

		d := haversine(me.Latitude, me.Longitude, candidate.Latitude, candidate.Longitude)
		// NaN distances (degenerate coordinates) must not pass the radius
		// check by accident; discard the candidate outright.
		if math.IsNaN(d) || d > float64(me.SearchRadiusKm) {
			continue
		}

		matches = append(matches, UserMatch{
			ID:             candidate.ID,
			Name:           candidate.Name,
			Email:          candidate.Email,
			IsAvailableNow: candidate.IsAvailableNow,
			SearchRadiusKm: candidate.SearchRadiusKm,
			DistanceKm:     roundKm(d),
			SharedSportIDs: shared,
		})
	}
	return matches, nil
}

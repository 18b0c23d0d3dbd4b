package main

import (
	"log"
	"net/http"
	"os"
)

// JWT secret from environment variable or fallback
func getJWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("your_secret_key_please_change_in_production")
}

var jwtSecret = getJWTSecret()

func main() {
	initDB()

	profiles := &pgProfiles{db: db}
	requests := &pgMatchRequests{db: db}

	// One cache for the whole process; every handler that mutates match
	// eligibility gets the same handle.
	cache := newMatchCache(matchesTTL)
	matchSvc := newMatchService(profiles, cache)

	mux := http.NewServeMux()

	// Core auth endpoints
	mux.Handle("/register", registerHandler(db))
	mux.Handle("/login", loginHandler(db))

	// Matches
	mux.Handle("/matches/me", myMatchesHandler(matchSvc))

	// Match request lifecycle
	mux.Handle("/match/request", sendMatchRequestHandler(requests, cache))
	mux.Handle("/match/incoming", listMatchRequestsHandler(requests, "incoming"))
	mux.Handle("/match/outgoing", listMatchRequestsHandler(requests, "outgoing"))
	mux.Handle("/match/history", listMatchRequestsHandler(requests, "history"))
	mux.Handle("/match/", matchRequestRouter(requests, cache)) // PATCH/DELETE /match/{id}, PATCH /match/{id}/cancel

	// Self-profile mutations that shift match eligibility
	mux.Handle("/me/availability", meAvailabilityHandler(db, cache)) // PATCH
	mux.Handle("/me/location", meLocationHandler(db, cache))         // PATCH
	mux.Handle("/me/sports", meSportsHandler(db, cache))             // PUT

	// Prometheus metrics
	mux.Handle("/metrics", metricsHandler())

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Default().Println("Starting SportConnect backend on port " + port + "...")
	http.ListenAndServe(":"+port, withCORS(mux))
}

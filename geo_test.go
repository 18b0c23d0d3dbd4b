package main

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	t.Run("Self distance is zero", func(t *testing.T) {
		points := [][2]float64{
			{0, 0},
			{50.0, 20.0},
			{60.1699, 24.9384},
			{-33.8688, 151.2093},
			{90, 0},
			{-90, 180},
		}
		for _, p := range points {
			if d := haversine(p[0], p[1], p[0], p[1]); d != 0 {
				t.Errorf("expected zero self-distance at (%v, %v), got %v", p[0], p[1], d)
			}
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		d1 := haversine(50.0, 20.0, 60.1699, 24.9384)
		d2 := haversine(60.1699, 24.9384, 50.0, 20.0)
		if math.Abs(d1-d2) > 1e-9 {
			t.Errorf("expected symmetric distances, got %v and %v", d1, d2)
		}
	})

	t.Run("One degree of latitude is about 111 km", func(t *testing.T) {
		d := haversine(50.0, 20.0, 51.0, 20.0)
		if d < 110 || d > 112 {
			t.Errorf("expected ~111 km, got %v", d)
		}
	})

	t.Run("Helsinki to Tampere", func(t *testing.T) {
		// ~160 km as the crow flies
		d := haversine(60.1699, 24.9384, 61.4991, 23.7871)
		if d < 150 || d > 170 {
			t.Errorf("expected ~160 km, got %v", d)
		}
	})

	t.Run("Antipodal points near half circumference", func(t *testing.T) {
		d := haversine(0, 0, 0, 180)
		expected := math.Pi * 6371.0
		if math.Abs(d-expected) > 1 {
			t.Errorf("expected ~%v km, got %v", expected, d)
		}
	})

	t.Run("Longitude wraparound", func(t *testing.T) {
		// Two points straddling the antimeridian are close, not a world apart.
		d := haversine(0, 179.5, 0, -179.5)
		if d > 120 {
			t.Errorf("expected a short hop across the antimeridian, got %v km", d)
		}
	})
}

func TestRoundKm(t *testing.T) {
	cases := map[float64]float64{
		5.556:     5.56,
		5.554:     5.55,
		0:         0,
		111.19496: 111.19,
	}
	for in, want := range cases {
		if got := roundKm(in); got != want {
			t.Errorf("roundKm(%v) = %v, want %v", in, got, want)
		}
	}
}

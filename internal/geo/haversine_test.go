package geo

import (
	"testing"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
)

func TestHaversine_IdenticalPointsAreZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.0, -75.0},
		{-90, 180},
		{23.5, 121.0},
	}

	for _, p := range points {
		assert.Zero(t, Haversine(p[0], p[1], p[0], p[1]))
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	d1 := Haversine(40.0, -75.0, 41.0, -74.0)
	d2 := Haversine(41.0, -74.0, 40.0, -75.0)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestHaversine_OneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude along a meridian is roughly 111 km.
	d := Haversine(0, 0, 1, 0)

	assert.InDelta(t, 111.19, d, 0.2)
}

func TestHaversine_Antipodal(t *testing.T) {
	// Half the Earth's circumference, no NaN from rounding at a == 1.
	d := Haversine(0, 0, 0, 180)

	assert.InDelta(t, EarthRadiusKm*3.14159265, d, 0.5)
	assert.False(t, d != d, "distance must not be NaN")
}

func TestHaversine_MatchesOrbReference(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{40.0, -75.0, 40.05, -75.0},
		{40.0, -75.0, 41.0, -75.0},
		{25.033, 121.565, 24.137, 120.686},
		{-33.86, 151.20, 51.50, -0.12},
	}

	for _, p := range pairs {
		got := Haversine(p.lat1, p.lon1, p.lat2, p.lon2)
		want := orbgeo.DistanceHaversine(
			orb.Point{p.lon1, p.lat1},
			orb.Point{p.lon2, p.lat2},
		) / 1000.0

		// orb uses a slightly different Earth radius; allow 0.5% slack.
		assert.InEpsilon(t, want, got, 0.005)
	}
}

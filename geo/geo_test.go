package geo_test

import (
	"math"
	"testing"

	"communitex-be/geo"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.Zero(t, geo.Distance(-23.561, -46.656, -23.561, -46.656))
	assert.Zero(t, geo.Distance(0, 0, 0, 0))
}

func TestDistanceIsSymmetric(t *testing.T) {
	points := [][4]float64{
		{-23.561, -46.656, -23.5611, -46.6561},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}
	for _, p := range points {
		forward := geo.Distance(p[0], p[1], p[2], p[3])
		backward := geo.Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, forward, backward, 1e-9)
	}
}

func TestDistanceAlongMeridian(t *testing.T) {
	// One degree of latitude spans R * pi/180 meters on the sphere.
	expected := geo.EarthRadiusMeters * math.Pi / 180
	assert.InDelta(t, expected, geo.Distance(0, 0, 1, 0), 0.001)
	assert.InDelta(t, expected, geo.Distance(-23, -46, -24, -46), 0.001)
}

func TestDistanceNeighboringReports(t *testing.T) {
	// Two reports one ten-thousandth of a degree apart land well inside the
	// 20m duplicate radius.
	d := geo.Distance(-23.561, -46.656, -23.5611, -46.6561)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 20.0)
}

func TestDistanceFarApart(t *testing.T) {
	// Sao Paulo to Rio de Janeiro, roughly 360km.
	d := geo.Distance(-23.5505, -46.6333, -22.9068, -43.1729)
	assert.InDelta(t, 360000, d, 10000)
}

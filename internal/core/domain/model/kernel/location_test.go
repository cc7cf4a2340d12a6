package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
		errParam  string
	}{
		{name: "valid location", latitude: 52.2297, longitude: 21.0122},
		{name: "valid location at min bounds", latitude: kernel.LatitudeMin, longitude: kernel.LongitudeMin},
		{name: "valid location at max bounds", latitude: kernel.LatitudeMax, longitude: kernel.LongitudeMax},
		{name: "null island", latitude: 0, longitude: 0},
		{name: "latitude too small", latitude: -90.0001, longitude: 0, wantErr: true, errParam: "latitude"},
		{name: "latitude too large", latitude: 91, longitude: 0, wantErr: true, errParam: "latitude"},
		{name: "longitude too small", latitude: 0, longitude: -180.5, wantErr: true, errParam: "longitude"},
		{name: "longitude too large", latitude: 0, longitude: 181, wantErr: true, errParam: "longitude"},
		{name: "latitude is NaN", latitude: math.NaN(), longitude: 0, wantErr: true, errParam: "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Contains(t, err.Error(), tt.errParam)
				assert.Error(t, loc.Validate())
				return
			}

			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.latitude, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 1e-9)
		})
	}

	t.Run("reports both coordinates when both are invalid", func(t *testing.T) {
		_, err := kernel.NewLocation(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var loc kernel.Location

		assert.Equal(t, kernel.ErrLocationIsNotConstructed, loc.Validate())
	})
}

func TestLocation_String(t *testing.T) {
	loc, err := kernel.NewLocation(52.2297, 21.0122)
	require.NoError(t, err)

	assert.Equal(t, "Location(52.229700,21.012200)", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20)
	b, _ := kernel.NewLocation(10, 20)
	c, _ := kernel.NewLocation(10, 20.5)

	t.Run("same coordinates are equal", func(t *testing.T) {
		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are not equal", func(t *testing.T) {
		equal, err := a.IsEqual(c)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		_, err := a.IsEqual(kernel.Location{})
		require.Error(t, err)
	})
}

func TestLocation_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		loc, _ := kernel.NewLocation(48.8566, 2.3522)

		d, err := loc.DistanceKm(loc)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("paris to london is about 344 km", func(t *testing.T) {
		paris, _ := kernel.NewLocation(48.8566, 2.3522)
		london, _ := kernel.NewLocation(51.5074, -0.1278)

		d, err := paris.DistanceKm(london)

		require.NoError(t, err)
		assert.InDelta(t, 344, d, 2)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewLocation(-33.8688, 151.2093)
		b, _ := kernel.NewLocation(35.6762, 139.6503)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("zero value location fails", func(t *testing.T) {
		a, _ := kernel.NewLocation(1, 1)

		_, err := a.DistanceKm(kernel.Location{})

		require.Error(t, err)
	})
}

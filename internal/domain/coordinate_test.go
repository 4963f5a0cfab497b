package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr string
	}{
		{name: "origin", lat: 0, lng: 0},
		{name: "san francisco", lat: 37.7749, lng: -122.4194},
		{name: "north pole edge", lat: 90, lng: 180},
		{name: "south pole edge", lat: -90, lng: -180},
		{name: "latitude above range", lat: 90.0001, lng: 0, wantErr: "latitude"},
		{name: "latitude below range", lat: -91, lng: 0, wantErr: "latitude"},
		{name: "longitude above range", lat: 0, lng: 180.5, wantErr: "longitude"},
		{name: "longitude below range", lat: 0, lng: -181, wantErr: "longitude"},
		{name: "latitude NaN", lat: math.NaN(), lng: 0, wantErr: "latitude"},
		{name: "longitude NaN", lat: 0, lng: math.NaN(), wantErr: "longitude"},
		{name: "latitude infinite", lat: math.Inf(1), lng: 0, wantErr: "latitude"},
		{name: "longitude infinite", lat: 0, lng: math.Inf(-1), wantErr: "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCoordinate(tt.lat, tt.lng).Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoordinate_Offset(t *testing.T) {
	c := NewCoordinate(10, 20).Offset(0.5, -1.5)

	assert.InDelta(t, 10.5, c.Latitude, 1e-9)
	assert.InDelta(t, 18.5, c.Longitude, 1e-9)
}

package controllers

import (
	"testing"
	"time"

	"eventfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventView(t *testing.T) {
	e := domain.Event{
		ID:            "2",
		Title:         "Modern  Art Exhibition",
		Category:      domain.CategoryArt,
		StartTime:     time.Date(2024, time.August, 15, 18, 0, 0, 0, time.UTC),
		DistanceMiles: 1.2,
		DistanceLabel: "1.2 miles",
	}

	v := NewEventView(e)

	assert.Equal(t, "Thu, Aug 15, 6:00 PM", v.DateLabel)
	assert.Equal(t, "#45b7d1", v.Color)
	assert.Equal(t, "1.2 miles", v.Distance)
	assert.Equal(t, "https://placehold.co/400x200?text=Art%2Bevent%2Bpreview%2Bimage%2Bshowing%2BModern%2BArt%2BExhibition", v.ImageURL)
}

func TestNewEventView_DateLabelUsesUTC(t *testing.T) {
	tz := time.FixedZone("PDT", -7*60*60)
	e := domain.Event{StartTime: time.Date(2024, time.August, 15, 11, 30, 0, 0, tz)}

	assert.Equal(t, "Thu, Aug 15, 6:30 PM", NewEventView(e).DateLabel)
}

func TestNewStateView_EmptyState(t *testing.T) {
	v := NewStateView(domain.AppState{Loading: true})

	assert.NotNil(t, v.Events)
	assert.Empty(t, v.Events)
	assert.Zero(t, v.Count)
	assert.Empty(t, v.Filters)
	assert.True(t, v.Loading)
	assert.Nil(t, v.Error)
	assert.Nil(t, v.CurrentLocation)
}

func TestNewMapView(t *testing.T) {
	loc := domain.NewCoordinate(10, 20)
	events := []domain.Event{
		{ID: "a", Title: "Gig", Category: domain.CategoryMusic, Location: loc.Offset(0.01, 0), DistanceLabel: "0.7 miles"},
		{ID: "b", Title: "Odd", Category: domain.Category("Comedy"), Location: loc.Offset(0, 0.01), DistanceLabel: "0.6 miles"},
	}

	m := NewMapView(loc, events)

	assert.Equal(t, MapRegion{Latitude: 10, Longitude: 20, LatitudeDelta: 0.05, LongitudeDelta: 0.05}, m.Region)
	require.Len(t, m.Markers, 3)
	assert.Equal(t, Marker{
		ID:          "current-location",
		Kind:        "current_location",
		Title:       "Your Location",
		Description: "You are here",
		Color:       "blue",
		Coordinate:  loc,
	}, m.Markers[0])
	assert.Equal(t, "Music • 0.7 miles", m.Markers[1].Description)
	assert.Equal(t, "M", m.Markers[1].Label)
	assert.Equal(t, "#ff6b6b", m.Markers[1].Color)
	assert.Equal(t, "#feca57", m.Markers[2].Color, "unknown categories use the fallback colour")
}

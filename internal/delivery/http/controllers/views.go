package controllers

import (
	"net/url"
	"regexp"
	"time"

	"eventfinder/internal/domain"
)

const (
	// dateLabelLayout renders e.g. "Thu, Aug 15, 6:00 PM".
	dateLabelLayout = "Mon, Jan 2, 3:04 PM"
	previewImageURL = "https://placehold.co/400x200?text="
	mapRegionDelta  = 0.05
	currentMarkerID = "current-location"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// EventView is an event as rendered in the list and on the map.
// swagger:model EventView
type EventView struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      domain.Category   `json:"category"`
	Color         string            `json:"color"`
	StartTime     time.Time         `json:"start_time"`
	DateLabel     string            `json:"date_label"`
	Location      domain.Coordinate `json:"location"`
	DistanceMiles float64           `json:"distance_miles"`
	Distance      string            `json:"distance"`
	ImageURL      string            `json:"image_url"`
}

// NewEventView derives the display fields of e.
func NewEventView(e domain.Event) EventView {
	return EventView{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Category:      e.Category,
		Color:         e.Category.Color(),
		StartTime:     e.StartTime,
		DateLabel:     e.StartTime.UTC().Format(dateLabelLayout),
		Location:      e.Location,
		DistanceMiles: e.DistanceMiles,
		Distance:      e.DistanceLabel,
		ImageURL:      previewImage(e),
	}
}

func previewImage(e domain.Event) string {
	text := string(e.Category) + "+event+preview+image+showing+" + whitespaceRun.ReplaceAllString(e.Title, "+")
	return previewImageURL + url.QueryEscape(text)
}

func newEventViews(events []domain.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventView(e))
	}
	return out
}

// StateError describes the failure currently shown to the user.
// swagger:model StateError
type StateError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StateView is the presentation snapshot of the application state.
// swagger:model StateView
type StateView struct {
	CurrentLocation *domain.Coordinate `json:"current_location"`
	Events          []EventView        `json:"events"`
	Count           int                `json:"count"`
	Filters         []domain.Category  `json:"filters"`
	Loading         bool               `json:"loading"`
	Error           *StateError        `json:"error"`
}

// NewStateView converts an AppState snapshot.
func NewStateView(s domain.AppState) StateView {
	v := StateView{
		CurrentLocation: s.CurrentLocation,
		Events:          newEventViews(s.Events),
		Count:           len(s.Events),
		Filters:         s.Filters.Categories(),
		Loading:         s.Loading,
	}
	if s.Error != "" {
		v.Error = &StateError{Kind: s.ErrorKind, Message: s.Error}
	}
	return v
}

// CategoryView is a filter chip.
// swagger:model CategoryView
type CategoryView struct {
	Name     domain.Category `json:"name"`
	Color    string          `json:"color"`
	Selected bool            `json:"selected"`
}

// MapRegion is the visible map area.
// swagger:model MapRegion
type MapRegion struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Marker is a pin on the map.
// swagger:model Marker
type Marker struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Label       string            `json:"label"`
	Color       string            `json:"color"`
	Coordinate  domain.Coordinate `json:"coordinate"`
}

// MapView is the map centred on the current location with one marker per event.
// swagger:model MapView
type MapView struct {
	Region  MapRegion `json:"region"`
	Markers []Marker  `json:"markers"`
}

// NewMapView builds the map for a known location. The current location marker comes first.
func NewMapView(loc domain.Coordinate, events []domain.Event) MapView {
	markers := make([]Marker, 0, len(events)+1)
	markers = append(markers, Marker{
		ID:          currentMarkerID,
		Kind:        "current_location",
		Title:       "Your Location",
		Description: "You are here",
		Color:       "blue",
		Coordinate:  loc,
	})
	for _, e := range events {
		label := ""
		if e.Category != "" {
			label = string(e.Category)[:1]
		}
		markers = append(markers, Marker{
			ID:          e.ID,
			Kind:        "event",
			Title:       e.Title,
			Description: string(e.Category) + " • " + e.DistanceLabel,
			Label:       label,
			Color:       e.Category.Color(),
			Coordinate:  e.Location,
		})
	}
	return MapView{
		Region: MapRegion{
			Latitude:       loc.Latitude,
			Longitude:      loc.Longitude,
			LatitudeDelta:  mapRegionDelta,
			LongitudeDelta: mapRegionDelta,
		},
		Markers: markers,
	}
}

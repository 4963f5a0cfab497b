package domain

import (
	"context"
	"time"
)

// Event is a nearby event resolved against a query location.
// DistanceMiles and DistanceLabel are computed per query and never stored.
// swagger:model Event
type Event struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	StartTime     time.Time  `json:"start_time"`
	Location      Coordinate `json:"location"`
	DistanceMiles float64    `json:"distance_miles"`
	DistanceLabel string     `json:"distance"`
}

// EventPrototype is a catalog entry. Its position is an offset in degrees from
// whatever location the catalog is resolved against.
type EventPrototype struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Category    Category  `yaml:"category"`
	StartTime   time.Time `yaml:"start_time"`
	LatOffset   float64   `yaml:"lat_offset"`
	LngOffset   float64   `yaml:"lng_offset"`
}

// Resolve returns an Event positioned relative to origin. Distance fields are left empty.
func (p EventPrototype) Resolve(origin Coordinate) Event {
	return Event{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		StartTime:   p.StartTime,
		Location:    origin.Offset(p.LatOffset, p.LngOffset),
	}
}

// EventRepository supplies candidate events around a location.
type EventRepository interface {
	// ListNear returns the full catalog resolved against origin, in catalog order.
	ListNear(ctx context.Context, origin Coordinate) ([]Event, error)
}

// EventService runs the filter / distance / sort pipeline.
type EventService interface {
	QueryEvents(ctx context.Context, location Coordinate, filters FilterSet) ([]Event, error)
	// SearchEvents is QueryEvents narrowed to events whose title or description contains query.
	SearchEvents(ctx context.Context, location Coordinate, query string, filters FilterSet) ([]Event, error)
}

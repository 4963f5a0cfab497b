package domain

import "context"

// AppState is a read-only snapshot of the application state handed to the presentation layer.
type AppState struct {
	CurrentLocation *Coordinate
	Events          []Event
	Filters         FilterSet
	Loading         bool
	Error           string
	ErrorKind       string
}

// AppStateService orchestrates location acquisition and event queries and owns the state.
type AppStateService interface {
	// Initialize acquires the location and, on success, runs the first query.
	Initialize(ctx context.Context) AppState
	SetFilters(ctx context.Context, filters FilterSet) AppState
	ToggleFilter(ctx context.Context, category Category) AppState
	// Refresh reruns the query, or Initialize when no location is known yet.
	Refresh(ctx context.Context) AppState
	State() AppState
}

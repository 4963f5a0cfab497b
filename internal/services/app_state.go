package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"eventfinder/internal/domain"
	"eventfinder/internal/metrics"
)

// appStateService owns the single mutable application state. The mutex is never
// held across calls into the location or event services.
type appStateService struct {
	locations domain.LocationService
	events    domain.EventService
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu       sync.Mutex
	state    domain.AppState
	seq      uint64 // sequence of the most recently issued query
	pending  int    // in-flight location requests and queries
	locating bool
}

// NewAppStateService returns a controller starting with the given filters, no
// location and loading set until Initialize completes.
func NewAppStateService(locations domain.LocationService,
	events domain.EventService,
	defaultFilters domain.FilterSet,
	logger *slog.Logger,
	m *metrics.Metrics,
) domain.AppStateService {
	return &appStateService{
		locations: locations,
		events:    events,
		logger:    logger,
		metrics:   m,
		state: domain.AppState{
			Events:  []domain.Event{},
			Filters: defaultFilters,
			Loading: true,
		},
	}
}

func (s *appStateService) Initialize(ctx context.Context) domain.AppState {
	s.mu.Lock()
	if s.locating {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.locating = true
	s.pending++
	s.state.Loading = true
	s.mu.Unlock()

	loc, err := s.locations.GetCurrentLocation(ctx)

	s.mu.Lock()
	s.locating = false
	s.pending--
	if err != nil {
		s.setErrorLocked(err)
		s.state.Loading = s.pending > 0
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "initialize: location error", "err", err)
		return snap
	}
	s.state.CurrentLocation = &loc
	s.clearErrorLocked()
	s.mu.Unlock()

	return s.runQuery(ctx)
}

func (s *appStateService) SetFilters(ctx context.Context, filters domain.FilterSet) domain.AppState {
	s.mu.Lock()
	s.state.Filters = filters
	s.mu.Unlock()
	return s.runQuery(ctx)
}

func (s *appStateService) ToggleFilter(ctx context.Context, category domain.Category) domain.AppState {
	s.mu.Lock()
	s.state.Filters = s.state.Filters.Toggle(category)
	s.mu.Unlock()
	return s.runQuery(ctx)
}

func (s *appStateService) Refresh(ctx context.Context) domain.AppState {
	s.mu.Lock()
	known := s.state.CurrentLocation != nil
	s.mu.Unlock()
	if !known {
		return s.Initialize(ctx)
	}
	return s.runQuery(ctx)
}

func (s *appStateService) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// runQuery issues a query for the current location and filters. Only the result
// of the most recently issued query is applied; older ones are dropped.
func (s *appStateService) runQuery(ctx context.Context) domain.AppState {
	s.mu.Lock()
	if s.state.CurrentLocation == nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	loc := *s.state.CurrentLocation
	filters := s.state.Filters
	s.seq++
	seq := s.seq
	s.pending++
	s.state.Loading = true
	s.mu.Unlock()

	events, err := s.events.QueryEvents(ctx, loc, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	switch {
	case seq != s.seq:
		s.metrics.IncStale()
		s.logger.DebugContext(ctx, "discarding stale query result", "seq", seq, "latest", s.seq)
	case err != nil:
		s.setErrorLocked(err)
		s.logger.WarnContext(ctx, "query error", "err", err)
	default:
		s.state.Events = events
		s.clearErrorLocked()
	}
	s.state.Loading = s.pending > 0
	return s.snapshotLocked()
}

func (s *appStateService) setErrorLocked(err error) {
	s.state.Error = err.Error()
	s.state.ErrorKind = domain.ErrorKind(err)
}

func (s *appStateService) clearErrorLocked() {
	s.state.Error = ""
	s.state.ErrorKind = ""
}

func (s *appStateService) snapshotLocked() domain.AppState {
	snap := s.state
	if s.state.CurrentLocation != nil {
		loc := *s.state.CurrentLocation
		snap.CurrentLocation = &loc
	}
	snap.Events = slices.Clone(s.state.Events)
	if snap.Events == nil {
		snap.Events = []domain.Event{}
	}
	return snap
}

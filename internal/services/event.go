package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"eventfinder/internal/domain"
	"eventfinder/internal/geo"
	"eventfinder/internal/metrics"
)

const queryFailedMessage = "Failed to fetch events. Please check your internet connection and try again."

type eventService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	metrics        *metrics.Metrics
	delay          time.Duration
	contextTimeout time.Duration
}

// NewEventService returns the filter / distance / sort pipeline over repo.
// delay simulates network latency before the catalog is read; zero disables it.
func NewEventService(eventRepo domain.EventRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
	delay time.Duration,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		logger:         logger,
		metrics:        m,
		delay:          delay,
		contextTimeout: timeout,
	}
}

func (s *eventService) QueryEvents(ctx context.Context, location domain.Coordinate, filters domain.FilterSet) ([]domain.Event, error) {
	return s.run(ctx, location, filters, nil)
}

func (s *eventService) SearchEvents(ctx context.Context, location domain.Coordinate, query string, filters domain.FilterSet) ([]domain.Event, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.run(ctx, location, filters, nil)
	}
	return s.run(ctx, location, filters, func(e domain.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q)
	})
}

func (s *eventService) run(ctx context.Context, location domain.Coordinate, filters domain.FilterSet, match func(domain.Event) bool) ([]domain.Event, error) {
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}
	start := time.Now()

	events, err := s.query(ctx, location, filters, match)
	if err != nil {
		s.metrics.ObserveQuery(metrics.StatusError, time.Since(start), 0)
		s.logger.ErrorContext(ctx, "event query failed", "err", err)
		return nil, &domain.QueryError{Message: queryFailedMessage, Err: err}
	}

	s.metrics.ObserveQuery(metrics.StatusOK, time.Since(start), len(events))
	s.logger.DebugContext(ctx, "event query",
		"lat", location.Latitude,
		"lng", location.Longitude,
		"filters", filters.Len(),
		"returned", len(events),
	)
	return events, nil
}

func (s *eventService) query(ctx context.Context, location domain.Coordinate, filters domain.FilterSet, match func(domain.Event) bool) ([]domain.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	candidates, err := s.eventRepo.ListNear(ctx, location)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, 0, len(candidates))
	for _, e := range candidates {
		if !filters.Contains(e.Category) {
			continue
		}
		if match != nil && !match(e) {
			continue
		}
		e.DistanceMiles = geo.Distance(location.Latitude, location.Longitude, e.Location.Latitude, e.Location.Longitude)
		e.DistanceLabel = geo.FormatMiles(e.DistanceMiles)
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b domain.Event) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})
	return out, nil
}

// wait blocks for the simulated latency or until ctx is done.
func (s *eventService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

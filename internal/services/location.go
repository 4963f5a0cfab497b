package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventfinder/internal/domain"
	"eventfinder/internal/metrics"
)

const permissionDeniedMessage = "Location permissions not granted. Please enable location access in your device settings."

type locationService struct {
	permissions    domain.PermissionRequester
	positions      domain.PositionSource
	logger         *slog.Logger
	metrics        *metrics.Metrics
	timeout        time.Duration
	validateCoords bool
}

// NewLocationService returns a single-shot location provider. timeout bounds the
// position read (zero leaves it to the source); validateCoords rejects
// out-of-range fixes as unavailable.
func NewLocationService(permissions domain.PermissionRequester,
	positions domain.PositionSource,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
	validateCoords bool,
) domain.LocationService {
	return &locationService{
		permissions:    permissions,
		positions:      positions,
		logger:         logger,
		metrics:        m,
		timeout:        timeout,
		validateCoords: validateCoords,
	}
}

func (s *locationService) GetCurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	status, err := s.permissions.RequestPermission(ctx)
	if err != nil {
		return domain.Coordinate{}, s.unavailable(ctx, err)
	}
	if status != domain.PermissionGranted {
		s.metrics.ObserveLocation(metrics.StatusPermissionDenied)
		s.logger.WarnContext(ctx, "location permission not granted", "status", string(status))
		return domain.Coordinate{}, &domain.LocationError{
			Kind:    domain.ErrPermissionDenied,
			Message: permissionDeniedMessage,
		}
	}

	readCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	pos, err := s.positions.CurrentPosition(readCtx, domain.AccuracyHigh)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return domain.Coordinate{}, s.unavailable(ctx, err)
	}
	if s.validateCoords {
		if err := pos.Validate(); err != nil {
			return domain.Coordinate{}, s.unavailable(ctx, err)
		}
	}

	s.metrics.ObserveLocation(metrics.StatusOK)
	s.logger.InfoContext(ctx, "location acquired", "lat", pos.Latitude, "lng", pos.Longitude)
	return pos, nil
}

func (s *locationService) unavailable(ctx context.Context, cause error) error {
	s.metrics.ObserveLocation(metrics.StatusLocationUnavailable)
	s.logger.ErrorContext(ctx, "location unavailable", "err", cause)
	return &domain.LocationError{
		Kind:    domain.ErrLocationUnavailable,
		Message: "Failed to get location: " + cause.Error(),
		Err:     cause,
	}
}

// Package geolocation implements the platform location capability for hosts
// without a device GPS: a fixed position, an IP lookup and a config-driven permission.
package geolocation

import (
	"context"
	"fmt"
	"strings"

	"eventfinder/internal/domain"
)

type staticSource struct {
	pos domain.Coordinate
}

// NewStaticSource returns a source that always reports pos.
func NewStaticSource(pos domain.Coordinate) domain.PositionSource {
	return &staticSource{pos: pos}
}

func (s *staticSource) CurrentPosition(ctx context.Context, _ domain.Accuracy) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return s.pos, nil
}

type configPermission struct {
	status domain.PermissionStatus
}

// NewConfigPermission returns a requester that answers with a fixed status.
func NewConfigPermission(status domain.PermissionStatus) domain.PermissionRequester {
	return &configPermission{status: status}
}

func (p *configPermission) RequestPermission(ctx context.Context) (domain.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.status, nil
}

// ParsePermission parses "granted", "denied" or "undetermined".
func ParsePermission(s string) (domain.PermissionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted":
		return domain.PermissionGranted, nil
	case "denied":
		return domain.PermissionDenied, nil
	case "undetermined", "":
		return domain.PermissionUndetermined, nil
	default:
		return "", fmt.Errorf("invalid location permission %q (must be granted, denied or undetermined)", s)
	}
}

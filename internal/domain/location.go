package domain

import "context"

// PermissionStatus is the host platform's answer to a foreground location request.
type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// Accuracy is the requested precision of a position fix.
type Accuracy int

const (
	AccuracyLow Accuracy = iota
	AccuracyBalanced
	AccuracyHigh
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyLow:
		return "low"
	case AccuracyBalanced:
		return "balanced"
	case AccuracyHigh:
		return "high"
	default:
		return "unknown"
	}
}

// PermissionRequester asks the host platform for foreground location access.
type PermissionRequester interface {
	RequestPermission(ctx context.Context) (PermissionStatus, error)
}

// PositionSource reads a single position fix from the host platform.
type PositionSource interface {
	CurrentPosition(ctx context.Context, accuracy Accuracy) (Coordinate, error)
}

// LocationService acquires the current location once per call.
// Errors are *LocationError wrapping ErrPermissionDenied or ErrLocationUnavailable.
type LocationService interface {
	GetCurrentLocation(ctx context.Context) (Coordinate, error)
}

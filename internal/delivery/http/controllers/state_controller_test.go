package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventfinder/internal/delivery/http/helpers"
	"eventfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeStateService implements domain.AppStateService for handler tests.
type fakeStateService struct {
	state          domain.AppState
	lastFilters    *domain.FilterSet
	lastToggle     domain.Category
	refreshCalls   int
	initializeCall int
}

func (f *fakeStateService) Initialize(ctx context.Context) domain.AppState {
	f.initializeCall++
	return f.state
}

func (f *fakeStateService) SetFilters(ctx context.Context, filters domain.FilterSet) domain.AppState {
	f.lastFilters = &filters
	f.state.Filters = filters
	return f.state
}

func (f *fakeStateService) ToggleFilter(ctx context.Context, category domain.Category) domain.AppState {
	f.lastToggle = category
	f.state.Filters = f.state.Filters.Toggle(category)
	return f.state
}

func (f *fakeStateService) Refresh(ctx context.Context) domain.AppState {
	f.refreshCalls++
	return f.state
}

func (f *fakeStateService) State() domain.AppState {
	return f.state
}

var testLocation = domain.NewCoordinate(37.7749, -122.4194)

func sampleEvents() []domain.Event {
	start := time.Date(2024, time.August, 15, 18, 0, 0, 0, time.UTC)
	return []domain.Event{
		{
			ID:            "1",
			Title:         "Jazz Night at Blue Note",
			Description:   "Live jazz performance",
			Category:      domain.CategoryMusic,
			StartTime:     start,
			Location:      testLocation.Offset(0.01, 0.01),
			DistanceMiles: 0.9,
			DistanceLabel: "0.9 miles",
		},
		{
			ID:            "3",
			Title:         "Basketball Game",
			Description:   "Local league finals",
			Category:      domain.CategorySports,
			StartTime:     start.Add(24 * time.Hour),
			Location:      testLocation.Offset(-0.02, 0.015),
			DistanceMiles: 1.6,
			DistanceLabel: "1.6 miles",
		},
	}
}

// decodeData decodes the envelope and unmarshals its data into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}

func TestStateController_GetState(t *testing.T) {
	loc := testLocation
	fake := &fakeStateService{state: domain.AppState{
		CurrentLocation: &loc,
		Events:          sampleEvents(),
		Filters:         domain.AllFilters(),
	}}
	ctrl := NewStateController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var view StateView
	envelope := decodeData(t, rr, &view)
	require.Nil(t, envelope.Error)
	require.NotNil(t, view.CurrentLocation)
	assert.Equal(t, loc, *view.CurrentLocation)
	assert.Equal(t, 2, view.Count)
	require.Len(t, view.Events, 2)
	assert.Equal(t, "0.9 miles", view.Events[0].Distance)
	assert.Equal(t, "#ff6b6b", view.Events[0].Color)
	assert.Equal(t, domain.AllCategories(), view.Filters)
	assert.False(t, view.Loading)
	assert.Nil(t, view.Error)
}

func TestStateController_GetState_Error(t *testing.T) {
	fake := &fakeStateService{state: domain.AppState{
		Filters:   domain.AllFilters(),
		Error:     "Location permissions not granted. Please enable location access in your device settings.",
		ErrorKind: domain.ErrorKindPermissionDenied,
	}}
	ctrl := NewStateController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var view StateView
	decodeData(t, rr, &view)
	assert.Nil(t, view.CurrentLocation)
	assert.NotNil(t, view.Events, "events must serialise as an empty list")
	assert.Empty(t, view.Events)
	require.NotNil(t, view.Error)
	assert.Equal(t, domain.ErrorKindPermissionDenied, view.Error.Kind)
	assert.Contains(t, view.Error.Message, "permissions not granted")
}

func TestStateController_SetFilters(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatus     int
		wantBodySubstr string
		wantFilters    []domain.Category
	}{
		{
			name:        "success",
			body:        `{"categories":["Music","art"]}`,
			wantStatus:  http.StatusOK,
			wantFilters: []domain.Category{domain.CategoryMusic, domain.CategoryArt},
		},
		{
			name:        "empty list hides everything",
			body:        `{"categories":[]}`,
			wantStatus:  http.StatusOK,
			wantFilters: []domain.Category{},
		},
		{
			name:           "missing categories",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "categories is required",
		},
		{
			name:           "unknown category",
			body:           `{"categories":["Opera"]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid category",
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "unknown field rejected",
			body:           `{"categories":[],"extra":1}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeStateService{state: domain.AppState{Filters: domain.AllFilters()}}
			ctrl := NewStateController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPut, "/filters", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SetFilters(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var view StateView
			envelope := decodeData(t, rr, &view)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastFilters)
				assert.Equal(t, tt.wantFilters, fake.lastFilters.Categories())
				assert.Equal(t, tt.wantFilters, view.Filters)
				return
			}
			assert.Nil(t, fake.lastFilters, "service must not be called on bad input")
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestStateController_ToggleFilter(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		wantStatus  int
		wantToggled domain.Category
	}{
		{name: "known category", category: "Sports", wantStatus: http.StatusOK, wantToggled: domain.CategorySports},
		{name: "case insensitive", category: "theater", wantStatus: http.StatusOK, wantToggled: domain.CategoryTheater},
		{name: "unknown category", category: "Opera", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeStateService{state: domain.AppState{Filters: domain.AllFilters()}}
			ctrl := NewStateController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/filters/"+tt.category+"/toggle", nil)
			req.SetPathValue("category", tt.category)
			rr := httptest.NewRecorder()

			ctrl.ToggleFilter(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantToggled, fake.lastToggle)
			if tt.wantStatus == http.StatusOK {
				var view StateView
				decodeData(t, rr, &view)
				assert.NotContains(t, view.Filters, tt.wantToggled)
				assert.Len(t, view.Filters, 3)
			}
		})
	}
}

func TestStateController_Refresh(t *testing.T) {
	fake := &fakeStateService{state: domain.AppState{
		Filters:   domain.AllFilters(),
		Error:     "Failed to fetch events. Please check your internet connection and try again.",
		ErrorKind: domain.ErrorKindEventQueryFailed,
	}}
	ctrl := NewStateController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.Refresh(rr, httptest.NewRequest(http.MethodPost, "/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, fake.refreshCalls)
	var view StateView
	decodeData(t, rr, &view)
	require.NotNil(t, view.Error)
	assert.Equal(t, domain.ErrorKindEventQueryFailed, view.Error.Kind)
}

func TestStateController_GetMap(t *testing.T) {
	t.Run("no location yet", func(t *testing.T) {
		ctrl := NewStateController(testLogger, &fakeStateService{})
		rr := httptest.NewRecorder()

		ctrl.GetMap(rr, httptest.NewRequest(http.MethodGet, "/map", nil))

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeData(t, rr, nil)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})

	t.Run("with location", func(t *testing.T) {
		loc := testLocation
		fake := &fakeStateService{state: domain.AppState{CurrentLocation: &loc, Events: sampleEvents()}}
		ctrl := NewStateController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.GetMap(rr, httptest.NewRequest(http.MethodGet, "/map", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var view MapView
		decodeData(t, rr, &view)
		assert.Equal(t, loc.Latitude, view.Region.Latitude)
		assert.Equal(t, 0.05, view.Region.LatitudeDelta)
		require.Len(t, view.Markers, 3)
		assert.Equal(t, "Your Location", view.Markers[0].Title)
		assert.Equal(t, "1", view.Markers[1].ID)
	})
}

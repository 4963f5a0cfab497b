package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	pos := domain.NewCoordinate(51.5074, -0.1278)
	src := NewStaticSource(pos)

	got, err := src.CurrentPosition(context.Background(), domain.AccuracyHigh)
	require.NoError(t, err)
	assert.Equal(t, pos, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.CurrentPosition(ctx, domain.AccuracyHigh)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParsePermission(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.PermissionStatus
		wantErr bool
	}{
		{"granted", domain.PermissionGranted, false},
		{" Denied ", domain.PermissionDenied, false},
		{"", domain.PermissionUndetermined, false},
		{"undetermined", domain.PermissionUndetermined, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePermission(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPermission(t *testing.T) {
	status, err := NewConfigPermission(domain.PermissionDenied).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionDenied, status)
}

func TestIPSource_CurrentPosition(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7","city":"Lisbon","latitude":38.7223,"longitude":-9.1393}`))
	}))
	defer srv.Close()

	src := NewIPSource(srv.Client(), srv.URL, "eventfinder/test")
	got, err := src.CurrentPosition(context.Background(), domain.AccuracyHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.NewCoordinate(38.7223, -9.1393), got)
	assert.Equal(t, "eventfinder/test", gotUA)
}

func TestIPSource_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantStatus  int
		wantMsg     string
	}{
		{"server error", http.StatusServiceUnavailable, "application/json", `{}`, http.StatusServiceUnavailable, "unexpected status code 503"},
		{"rate limited", http.StatusTooManyRequests, "application/json", `{}`, http.StatusTooManyRequests, "unexpected status code 429"},
		{"html body", http.StatusOK, "text/html", `<html></html>`, 0, "unexpected content-type"},
		{"malformed json", http.StatusOK, "application/json", `{"latitude":`, 0, "failed to decode"},
		{"missing coordinates", http.StatusOK, "application/json", `{"error":true,"reason":"RateLimited"}`, 0, "no coordinates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewIPSource(srv.Client(), srv.URL, "").CurrentPosition(context.Background(), domain.AccuracyHigh)
			require.Error(t, err)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestIPSource_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewIPSource(srv.Client(), srv.URL, "").CurrentPosition(ctx, domain.AccuracyHigh)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewIPSource_Defaults(t *testing.T) {
	src := NewIPSource(nil, "", "").(*ipSource)
	assert.Equal(t, http.DefaultClient, src.client)
	assert.Equal(t, DefaultIPLookupURL, src.url)
}

package http

import (
	"net/http"

	"eventfinder/internal/delivery/http/controllers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(stateController *controllers.StateController, eventController *controllers.EventController, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// State
	mux.HandleFunc("GET /state", stateController.GetState)
	mux.HandleFunc("PUT /filters", stateController.SetFilters)
	mux.HandleFunc("POST /filters/{category}/toggle", stateController.ToggleFilter)
	mux.HandleFunc("POST /refresh", stateController.Refresh)
	mux.HandleFunc("GET /map", stateController.GetMap)

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /categories", eventController.ListCategories)

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

package controllers

import (
	"log/slog"
	"net/http"

	"eventfinder/internal/delivery/http/helpers"
	"eventfinder/internal/domain"
)

// SetFiltersRequest is the request body for PUT /filters. An empty list is valid and hides every event.
type SetFiltersRequest struct {
	Categories []string `json:"categories"`
}

// Validate implements Validator.
func (s SetFiltersRequest) Validate() []string {
	var errs []string
	if s.Categories == nil {
		errs = append(errs, "categories is required")
	}
	return errs
}

// StateSuccessResponse is the success response envelope for state endpoints (200).
type StateSuccessResponse struct {
	Data  StateView         `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MapSuccessResponse is the success response envelope for GET /map (200).
type MapSuccessResponse struct {
	Data  MapView           `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type StateController struct {
	Logger  *slog.Logger
	Service domain.AppStateService
}

func NewStateController(logger *slog.Logger, svc domain.AppStateService) *StateController {
	return &StateController{
		Logger:  logger,
		Service: svc,
	}
}

// GetState godoc
// @Summary Get the application state
// @Description Returns the current location, the events for the active filters, the filters themselves, the loading flag and the last error, if any.
// @Tags state
// @Produce json
// @Success 200 {object} controllers.StateSuccessResponse
// @Router /state [get]
func (c *StateController) GetState(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, NewStateView(c.Service.State()))
}

// SetFilters godoc
// @Summary Replace the active category filters
// @Description Replaces the filter set and reruns the event query when a location is known. An empty list hides every event.
// @Tags state
// @Accept json
// @Produce json
// @Param filters body SetFiltersRequest true "Categories to show"
// @Success 200 {object} controllers.StateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /filters [put]
func (c *StateController) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req SetFiltersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	categories, err := domain.ParseCategories(req.Categories)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	st := c.Service.SetFilters(r.Context(), domain.NewFilterSet(categories...))
	helpers.WriteJSONSuccess(w, http.StatusOK, NewStateView(st))
}

// ToggleFilter godoc
// @Summary Toggle one category filter
// @Description Removes the category from the active filters if present, adds it otherwise, and reruns the event query.
// @Tags state
// @Produce json
// @Param category path string true "Category name (Music, Sports, Art, Theater)"
// @Success 200 {object} controllers.StateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /filters/{category}/toggle [post]
func (c *StateController) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	st := c.Service.ToggleFilter(r.Context(), category)
	helpers.WriteJSONSuccess(w, http.StatusOK, NewStateView(st))
}

// Refresh godoc
// @Summary Retry after an error
// @Description Reruns the event query, or acquires the location first when none is known yet.
// @Tags state
// @Produce json
// @Success 200 {object} controllers.StateSuccessResponse
// @Router /refresh [post]
func (c *StateController) Refresh(w http.ResponseWriter, r *http.Request) {
	st := c.Service.Refresh(r.Context())
	if st.Error != "" {
		c.Logger.WarnContext(r.Context(), "refresh left an error", "kind", st.ErrorKind, "err", st.Error)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewStateView(st))
}

// GetMap godoc
// @Summary Get the map view
// @Description Returns the map region centred on the current location and one marker per event, plus the current location marker.
// @Tags state
// @Produce json
// @Success 200 {object} controllers.MapSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /map [get]
func (c *StateController) GetMap(w http.ResponseWriter, r *http.Request) {
	st := c.Service.State()
	if st.CurrentLocation == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "current location not available")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewMapView(*st.CurrentLocation, st.Events))
}

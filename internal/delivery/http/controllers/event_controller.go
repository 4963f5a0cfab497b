package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventfinder/internal/delivery/http/helpers"
	"eventfinder/internal/domain"
)

// ListEventsResponse is the response body for GET /events.
type ListEventsResponse struct {
	Events     []EventView            `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []CategoryView    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	State   domain.AppStateService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, state domain.AppStateService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		State:   state,
	}
}

// ListEvents godoc
// @Summary Query events near a location
// @Description Stateless query: filters the catalog by category, computes distances from (lat, lng) and returns events nearest first. Omitting categories selects all; an empty value selects none. q narrows to events whose title or description contains it.
// @Tags events
// @Produce json
// @Param lat query number true "Latitude in decimal degrees"
// @Param lng query number true "Longitude in decimal degrees"
// @Param categories query string false "Comma-separated categories"
// @Param q query string false "Text search over title and description"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 503 {object} helpers.APIResponse "error.code: event_query_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc, err := parseCoordinate(q.Get("lat"), q.Get("lng"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	filters := domain.AllFilters()
	if q.Has("categories") {
		categories, err := domain.ParseCategories(splitList(q.Get("categories")))
		if err != nil {
			helpers.WriteDomainError(w, err)
			return
		}
		filters = domain.NewFilterSet(categories...)
	}

	var events []domain.Event
	if search := q.Get("q"); search != "" {
		events, err = c.Service.SearchEvents(r.Context(), loc, search, filters)
	} else {
		events, err = c.Service.QueryEvents(r.Context(), loc, filters)
	}
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}

	page := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     newEventViews(helpers.Paginate(events, page)),
		Pagination: helpers.NewPaginationMeta(page, len(events)),
	})
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns every category with its display colour and whether it is in the active filter set.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse
// @Router /categories [get]
func (c *EventController) ListCategories(w http.ResponseWriter, r *http.Request) {
	active := c.State.State().Filters
	out := make([]CategoryView, 0, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		out = append(out, CategoryView{Name: cat, Color: cat.Color(), Selected: active.Contains(cat)})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

func parseCoordinate(lat, lng string) (domain.Coordinate, error) {
	if lat == "" || lng == "" {
		return domain.Coordinate{}, errRequired("lat and lng")
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinate{}, errInvalid("lat", lat)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return domain.Coordinate{}, errInvalid("lng", lng)
	}
	c := domain.NewCoordinate(la, ln)
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

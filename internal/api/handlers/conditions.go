package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"golfphysics/internal/core"
	"golfphysics/internal/courses"
	"golfphysics/internal/types"
)

// ConditionsHandler serves the weather passthrough and course lookup
// endpoints.
type ConditionsHandler struct {
	weather WeatherService
	logger  *slog.Logger
}

// NewConditionsHandler creates the conditions handler.
func NewConditionsHandler(weather WeatherService, l *slog.Logger) *ConditionsHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ConditionsHandler{
		weather: weather,
		logger:  l,
	}
}

// RegisterRoutes mounts the conditions and courses endpoints on the v1 router.
func (h *ConditionsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/conditions", h.ByCity)
	r.Get("/conditions/coords", h.ByCoords)
	r.Get("/courses", h.ListCourses)
}

// ByCity handles GET /v1/conditions?city=&state=&country=.
func (h *ConditionsHandler) ByCity(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField,
			"query parameter 'city' is required", nil))
		return
	}
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	country := strings.TrimSpace(r.URL.Query().Get("country"))

	obs, err := h.weather.CurrentByCity(r.Context(), city, state, country)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	obs.AltitudeFt = courses.CityAltitude(city, state, country)

	core.Data(w, r, http.StatusOK, obs)
}

// ByCoords handles GET /v1/conditions/coords?lat=&lon=. No altitude lookup
// is attempted for raw coordinates; altitude is reported as sea level.
func (h *ConditionsHandler) ByCoords(w http.ResponseWriter, r *http.Request) {
	lat, err := parseCoord(r.URL.Query().Get("lat"), -90, 90)
	if err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationCoordinates,
			"query parameter 'lat' must be a number between -90 and 90", err))
		return
	}
	lon, err := parseCoord(r.URL.Query().Get("lon"), -180, 180)
	if err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationCoordinates,
			"query parameter 'lon' must be a number between -180 and 180", err))
		return
	}

	obs, err := h.weather.CurrentByCoords(r.Context(), lat, lon)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, obs)
}

// ListCourses handles GET /v1/courses?q=. An empty query returns the full
// table.
func (h *ConditionsHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var results []types.CourseLocation
	if q == "" {
		results = courses.All()
	} else {
		results = courses.Search(q)
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"courses": results,
		"count":   len(results),
	})
}

type coordError struct{ msg string }

func (e *coordError) Error() string { return e.msg }

func parseCoord(raw string, min, max float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &coordError{msg: "missing value"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, &coordError{msg: "out of range"}
	}
	return v, nil
}

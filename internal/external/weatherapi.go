package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golfphysics/internal/types"
)

// weatherAPIBase is the default WeatherAPI.com base URL.
// Overridable in tests via WeatherClientConfig.BaseURL.
const weatherAPIBase = "https://api.weatherapi.com/v1"

// weatherAPINoMatch is WeatherAPI.com's error code for an unrecognized
// location query.
const weatherAPINoMatch = 1006

// WeatherClientConfig holds the configuration for creating a WeatherClient.
type WeatherClientConfig struct {
	APIKey  string
	BaseURL string // Override for testing; defaults to weatherAPIBase
	Logger  *slog.Logger
}

// WeatherClient implements WeatherProvider against the WeatherAPI.com
// current conditions endpoint through BaseClient.
//
// WeatherAPI reports everything the simulation needs except altitude; the
// returned ObservedConditions has AltitudeFt zero and callers fill it from
// the course or city lookup tables.
type WeatherClient struct {
	base    *BaseClient
	apiKey  string
	baseURL string
	clock   types.Clock
	logger  *slog.Logger
}

// NewWeatherClient creates a WeatherClient. The httpClient timeout should be
// the configured weather timeout (10s default).
func NewWeatherClient(httpClient *http.Client, cfg WeatherClientConfig) *WeatherClient {
	base := NewBaseClient(httpClient, "weatherapi", DefaultRetryPolicy())
	return NewWeatherClientWithBase(base, cfg)
}

// NewWeatherClientWithBase creates a WeatherClient with a pre-configured
// BaseClient, for tests that need to control retry behavior.
func NewWeatherClientWithBase(base *BaseClient, cfg WeatherClientConfig) *WeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = weatherAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WeatherClient{
		base:    base,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		clock:   types.RealClock{},
		logger:  logger,
	}
}

// CurrentByCity fetches current conditions for a named city. State and
// country narrow the match when provided.
func (w *WeatherClient) CurrentByCity(ctx context.Context, city, state, country string) (*types.ObservedConditions, error) {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, state, country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return w.current(ctx, strings.Join(parts, ","))
}

// CurrentByCoords fetches current conditions for a lat/lon pair.
func (w *WeatherClient) CurrentByCoords(ctx context.Context, lat, lon float64) (*types.ObservedConditions, error) {
	return w.current(ctx, fmt.Sprintf("%.4f,%.4f", lat, lon))
}

func (w *WeatherClient) current(ctx context.Context, query string) (*types.ObservedConditions, error) {
	params := url.Values{}
	params.Set("key", w.apiKey)
	params.Set("q", query)
	params.Set("aqi", "no")

	reqURL := w.baseURL + "/current.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create weather request",
			err,
		)
	}

	resp, err := w.base.Do(req)
	if err != nil {
		return nil, w.wrapWeatherError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, w.handleErrorResponse(resp, query)
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"failed to decode weather response",
			err,
		)
	}

	return w.mapConditions(&payload), nil
}

// ---------------------------------------------------------------------------
// WeatherAPI Response Types
// ---------------------------------------------------------------------------

type weatherAPIResponse struct {
	Location weatherAPILocation `json:"location"`
	Current  weatherAPICurrent  `json:"current"`
}

type weatherAPILocation struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type weatherAPICurrent struct {
	TempF      float64             `json:"temp_f"`
	Humidity   float64             `json:"humidity"`
	PressureIn float64             `json:"pressure_in"`
	WindMPH    float64             `json:"wind_mph"`
	WindDegree float64             `json:"wind_degree"`
	Condition  weatherAPICondition `json:"condition"`
}

type weatherAPICondition struct {
	Text string `json:"text"`
}

// mapConditions converts a WeatherAPI payload to domain conditions.
func (w *WeatherClient) mapConditions(payload *weatherAPIResponse) *types.ObservedConditions {
	loc := payload.Location.Name
	if payload.Location.Region != "" {
		loc += ", " + payload.Location.Region
	}
	if payload.Location.Country != "" {
		loc += ", " + payload.Location.Country
	}

	return &types.ObservedConditions{
		Location:         loc,
		TemperatureF:     payload.Current.TempF,
		HumidityPct:      payload.Current.Humidity,
		PressureInHg:     payload.Current.PressureIn,
		WindSpeedMPH:     payload.Current.WindMPH,
		WindDirectionDeg: payload.Current.WindDegree,
		ConditionsText:   payload.Current.Condition.Text,
		FetchedAt:        w.clock.Now(),
	}
}

// ---------------------------------------------------------------------------
// Error Handling
// ---------------------------------------------------------------------------

type weatherAPIError struct {
	Error weatherAPIErrorBody `json:"error"`
}

type weatherAPIErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleErrorResponse maps a WeatherAPI error body to a domain error.
// Code 1006 (no matching location) becomes a 404; everything else is an
// upstream failure.
func (w *WeatherClient) handleErrorResponse(resp *http.Response, query string) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather provider returned status %d and response body was unreadable", resp.StatusCode),
			readErr,
		)
	}

	var apiErr weatherAPIError
	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Code == weatherAPINoMatch {
		return types.NewAppError(
			types.ErrCodeNotFoundLocation,
			fmt.Sprintf("no weather data for location %q", query),
			nil,
		)
	}

	w.logger.Warn("weather provider error",
		"status", resp.StatusCode,
		"code", apiErr.Error.Code,
	)

	return types.NewAppError(
		types.ErrCodeUpstreamWeather,
		fmt.Sprintf("weather provider error (%d): %s", resp.StatusCode, apiErr.Error.Message),
		nil,
	)
}

// wrapWeatherError converts BaseClient transport failures to the weather
// upstream code so the API reports a consistent 502.
func (w *WeatherClient) wrapWeatherError(err error) error {
	var appErr *types.AppError
	if ok := asAppError(err, &appErr); ok {
		return types.NewAppError(types.ErrCodeUpstreamWeather, appErr.Message, appErr)
	}
	return types.NewAppError(types.ErrCodeUpstreamWeather, "weather request failed", err)
}

// Compile-time assertion that WeatherClient satisfies WeatherProvider.
var _ WeatherProvider = (*WeatherClient)(nil)

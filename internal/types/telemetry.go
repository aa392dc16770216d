package types

// Telemetry metric names for CloudWatch.
// All components MUST use these constants.
const (
	// Metric Names
	MetricAPIRequest     = "APIRequest"
	MetricAPIError       = "APIError"
	MetricAPILatency     = "APILatency"
	MetricSimulationTime = "SimulationTime"
	MetricWeatherFetch   = "WeatherFetch"
	MetricRateLimited    = "RateLimited"
	MetricEmailQueued    = "EmailQueued"
	MetricEmailSent      = "EmailSent"
	MetricEmailFailed    = "EmailFailed"

	// Dimension Keys
	DimEndpoint  = "Endpoint"
	DimTier      = "Tier"
	DimProvider  = "Provider"
	DimEmailKind = "EmailKind"
	DimStatus    = "Status"

	// Metric Namespace
	MetricNamespace = "GolfPhysics"
)

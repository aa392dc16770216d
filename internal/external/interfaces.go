package external

import (
	"context"

	"golfphysics/internal/types"
)

// WeatherProvider fetches current observed conditions for a location.
// Implemented by WeatherClient; handlers and tests depend on the interface.
type WeatherProvider interface {
	// CurrentByCity fetches conditions for a named city. State and country
	// are optional refinements. Returns ErrCodeNotFoundLocation when the
	// provider does not recognize the place.
	CurrentByCity(ctx context.Context, city, state, country string) (*types.ObservedConditions, error)

	// CurrentByCoords fetches conditions for a lat/lon pair.
	CurrentByCoords(ctx context.Context, lat, lon float64) (*types.ObservedConditions, error)
}

// Email is one rendered transactional email ready for delivery.
type Email struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// EmailProvider delivers a rendered email and returns the provider's
// message ID. Implemented by SendGridClient.
type EmailProvider interface {
	Send(ctx context.Context, email Email) (string, error)
}

// CaptchaVerifier checks a reCAPTCHA token against a minimum score.
// Implemented by RecaptchaClient. A disabled verifier accepts everything.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, minScore float64) error
}

// CheckoutProvider creates hosted payment sessions for plan upgrades.
// Implemented by StripeClient.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*types.CheckoutResponse, error)
}

// CheckoutSessionParams carries everything Stripe needs to build a Checkout
// session. ClientID and Tier ride along as metadata so the webhook can
// correlate the completed payment back to the API client.
type CheckoutSessionParams struct {
	ClientID   string
	Email      string
	Tier       types.PlanTier
	PriceID    string
	SuccessURL string
	CancelURL  string
}

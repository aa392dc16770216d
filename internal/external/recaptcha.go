package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golfphysics/internal/types"
)

// recaptchaVerifyURL is Google's siteverify endpoint.
// Overridable in tests via RecaptchaClientConfig.BaseURL.
const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Minimum reCAPTCHA v3 scores per form. The key request form issues a
// credential so it gets the stricter threshold.
const (
	MinScoreContact    = 0.4
	MinScoreKeyRequest = 0.5
)

// RecaptchaClientConfig holds the configuration for creating a RecaptchaClient.
type RecaptchaClientConfig struct {
	Secret  string
	BaseURL string // Override for testing; defaults to recaptchaVerifyURL
	Logger  *slog.Logger
}

// RecaptchaClient implements CaptchaVerifier against Google's siteverify
// endpoint. With an empty secret the verifier is disabled and accepts every
// token, so local and test environments work without Google credentials.
type RecaptchaClient struct {
	base    *BaseClient
	secret  string
	baseURL string
	logger  *slog.Logger
}

// NewRecaptchaClient creates a RecaptchaClient. The httpClient timeout
// should be short (5s); a slow verification stalls a public form post.
func NewRecaptchaClient(httpClient *http.Client, cfg RecaptchaClientConfig) *RecaptchaClient {
	base := NewBaseClient(httpClient, "recaptcha", DefaultRetryPolicy())
	return NewRecaptchaClientWithBase(base, cfg)
}

// NewRecaptchaClientWithBase creates a RecaptchaClient with a pre-configured
// BaseClient, for tests.
func NewRecaptchaClientWithBase(base *BaseClient, cfg RecaptchaClientConfig) *RecaptchaClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = recaptchaVerifyURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RecaptchaClient{
		base:    base,
		secret:  cfg.Secret,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Enabled reports whether a secret is configured.
func (r *RecaptchaClient) Enabled() bool {
	return r.secret != ""
}

// recaptchaVerifyResponse is the siteverify response body. Score is only
// present for v3 tokens; v2 responses carry success alone and score stays 0,
// so a zero minScore accepts them.
type recaptchaVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the token and enforces the minimum score. Returns nil when
// the verifier is disabled. A failed or low-score token maps to the
// recaptcha validation error (400); an unreachable Google maps to the
// recaptcha upstream error (502).
func (r *RecaptchaClient) Verify(ctx context.Context, token string, minScore float64) error {
	if !r.Enabled() {
		return nil
	}

	if token == "" {
		return types.NewAppError(
			types.ErrCodeValidationRecaptcha,
			"recaptcha token is required",
			nil,
		)
	}

	form := url.Values{}
	form.Set("secret", r.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create recaptcha request",
			err,
		)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.base.Do(req)
	if err != nil {
		return r.wrapRecaptchaError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NewAppError(
			types.ErrCodeUpstreamRecaptcha,
			fmt.Sprintf("recaptcha verification returned status %d", resp.StatusCode),
			nil,
		)
	}

	var verdict recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamRecaptcha,
			"failed to decode recaptcha response",
			err,
		)
	}

	if !verdict.Success {
		r.logger.Warn("recaptcha verification failed", "error_codes", verdict.ErrorCodes)
		return types.NewAppError(
			types.ErrCodeValidationRecaptcha,
			"recaptcha verification failed",
			nil,
		)
	}

	if verdict.Score < minScore {
		return types.NewAppErrorWithDetails(
			types.ErrCodeValidationRecaptcha,
			"recaptcha score below threshold",
			nil,
			map[string]any{"score": verdict.Score},
		)
	}

	return nil
}

// wrapRecaptchaError re-tags BaseClient transport failures.
func (r *RecaptchaClient) wrapRecaptchaError(err error) error {
	var appErr *types.AppError
	if asAppError(err, &appErr) {
		return types.NewAppError(types.ErrCodeUpstreamRecaptcha, appErr.Message, appErr)
	}
	return types.NewAppError(types.ErrCodeUpstreamRecaptcha, "recaptcha request failed", err)
}

// Compile-time assertion that RecaptchaClient satisfies CaptchaVerifier.
var _ CaptchaVerifier = (*RecaptchaClient)(nil)

package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golfphysics/internal/types"
)

// sendGridAPIBase is the default SendGrid API base URL.
// Overridable in tests via SendGridClientConfig.BaseURL.
const sendGridAPIBase = "https://api.sendgrid.com"

// SendGridClientConfig holds the configuration for creating a SendGridClient.
type SendGridClientConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
	BaseURL     string // Override for testing; defaults to sendGridAPIBase
	Logger      *slog.Logger
}

// SendGridClient implements EmailProvider by calling the SendGrid v3 Mail
// Send API through BaseClient. Templates are rendered locally by
// internal/email, so the payload carries finished text and HTML bodies
// rather than dynamic template references.
type SendGridClient struct {
	base   *BaseClient
	cfg    SendGridClientConfig
	logger *slog.Logger
}

// NewSendGridClient creates a SendGridClient. The httpClient timeout should
// be around 10 seconds; email delivery happens off the request path so a
// slow provider only delays the worker.
func NewSendGridClient(httpClient *http.Client, cfg SendGridClientConfig) *SendGridClient {
	base := NewBaseClient(httpClient, "sendgrid", DefaultRetryPolicy())
	return NewSendGridClientWithBase(base, cfg)
}

// NewSendGridClientWithBase creates a SendGridClient with a pre-configured
// BaseClient, for tests.
func NewSendGridClientWithBase(base *BaseClient, cfg SendGridClientConfig) *SendGridClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = sendGridAPIBase
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SendGridClient{
		base:   base,
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one rendered email and returns the provider message ID from
// the X-Message-Id response header. SendGrid answers 202 Accepted on success.
func (s *SendGridClient) Send(ctx context.Context, email Email) (string, error) {
	payload := s.buildMailPayload(email)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to marshal mail payload",
			err,
		)
	}

	reqURL := s.cfg.BaseURL + "/v3/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create mail send request",
			err,
		)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.base.Do(req)
	if err != nil {
		return "", s.wrapSendGridError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		return resp.Header.Get("X-Message-Id"), nil
	}

	return "", s.handleErrorResponse(resp)
}

// ---------------------------------------------------------------------------
// Payload Construction
// ---------------------------------------------------------------------------

// sendGridMailPayload is the SendGrid v3 mail/send request body.
type sendGridMailPayload struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (s *SendGridClient) buildMailPayload(email Email) sendGridMailPayload {
	// SendGrid requires text/plain before text/html in the content array.
	content := make([]sendGridContent, 0, 2)
	if email.TextBody != "" {
		content = append(content, sendGridContent{Type: "text/plain", Value: email.TextBody})
	}
	if email.HTMLBody != "" {
		content = append(content, sendGridContent{Type: "text/html", Value: email.HTMLBody})
	}

	return sendGridMailPayload{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridAddress{{Email: email.ToEmail, Name: email.ToName}}},
		},
		From: sendGridAddress{
			Email: s.cfg.FromAddress,
			Name:  s.cfg.FromName,
		},
		Subject: email.Subject,
		Content: content,
	}
}

// ---------------------------------------------------------------------------
// Error Handling
// ---------------------------------------------------------------------------

type sendGridErrorResponse struct {
	Errors []sendGridErrorDetail `json:"errors"`
}

type sendGridErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func (s *SendGridClient) handleErrorResponse(resp *http.Response) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamEmail,
			fmt.Sprintf("SendGrid returned status %d and response body was unreadable", resp.StatusCode),
			readErr,
		)
	}

	var sgErr sendGridErrorResponse
	errMsg := string(body)
	if jsonErr := json.Unmarshal(body, &sgErr); jsonErr == nil && len(sgErr.Errors) > 0 {
		errMsg = sgErr.Errors[0].Message
	}

	return types.NewAppError(
		types.ErrCodeUpstreamEmail,
		fmt.Sprintf("SendGrid error (%d): %s", resp.StatusCode, errMsg),
		nil,
	)
}

// wrapSendGridError re-tags BaseClient transport failures with the email
// upstream code, preserving the chain for logging.
func (s *SendGridClient) wrapSendGridError(err error) error {
	var appErr *types.AppError
	if asAppError(err, &appErr) {
		return types.NewAppError(types.ErrCodeUpstreamEmail, appErr.Message, appErr)
	}
	return types.NewAppError(types.ErrCodeUpstreamEmail, "SendGrid request failed", err)
}

// Compile-time assertion that SendGridClient satisfies EmailProvider.
var _ EmailProvider = (*SendGridClient)(nil)

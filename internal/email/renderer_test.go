package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

const testDocsURL = "https://docs.golfphysics.example.com"

func newTestRenderer() *Renderer {
	return NewRenderer(testDocsURL)
}

func TestRender_APIKeyWelcome(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailAPIKeyWelcome,
		ToEmail: "pro@clubfitters.com",
		ToName:  "Jordan Pro",
		Data: map[string]string{
			"name":    "Jordan Pro",
			"api_key": "gp_live_0123abcd",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pro@clubfitters.com", msg.ToEmail)
	assert.Equal(t, "Jordan Pro", msg.ToName)
	assert.Equal(t, "Your Golf Physics API Key is Ready", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "gp_live_0123abcd")
	assert.Contains(t, msg.HTMLBody, testDocsURL)
	assert.Contains(t, msg.TextBody, "gp_live_0123abcd")
	assert.Contains(t, msg.TextBody, "X-API-Key")
}

func TestRender_ContactConfirmation(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailContactConfirmation,
		ToEmail: "sam@example.com",
		Data: map[string]string{
			"name":    "Sam",
			"message": "How accurate is the altitude model?",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Thanks for contacting Golf Physics API", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "How accurate is the altitude model?")
	assert.Contains(t, msg.TextBody, "Hi Sam,")
}

func TestRender_ContactAdminAlert_SubjectCarriesPriority(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailContactAdminAlert,
		ToEmail: "admin@golfphysics.example.com",
		Data: map[string]string{
			"name":     "Sam",
			"email":    "sam@example.com",
			"message":  "Enterprise pricing for a launch monitor fleet",
			"priority": "HIGH",
			"company":  "FlightDeck Golf",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "HIGH Lead: contact - Sam", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "FlightDeck Golf")
	assert.Contains(t, msg.TextBody, "sam@example.com")
}

func TestRender_ContactAdminAlert_OmitsEmptyCompany(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailContactAdminAlert,
		ToEmail: "admin@golfphysics.example.com",
		Data: map[string]string{
			"name":     "Sam",
			"email":    "sam@example.com",
			"message":  "hello",
			"priority": "NORMAL",
		},
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTMLBody, "Company")
	assert.NotContains(t, msg.TextBody, "Company")
}

func TestRender_ProspectAdminAlert(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailProspectAdminAlert,
		ToEmail: "admin@golfphysics.example.com",
		Data: map[string]string{
			"name":            "Jordan Pro",
			"email":           "pro@clubfitters.com",
			"priority":        "HIGH",
			"use_case":        "club fitting simulations",
			"expected_volume": "50000/month",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "HIGH Lead: api_key_request - Jordan Pro", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "club fitting simulations")
	assert.Contains(t, msg.TextBody, "50000/month")
}

func TestRender_PlanUpgraded(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailPlanUpgraded,
		ToEmail: "pro@clubfitters.com",
		Data: map[string]string{
			"name":                "Jordan Pro",
			"tier":                "starter",
			"requests_per_minute": "200",
			"requests_per_day":    "10000",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Your Golf Physics API plan is now starter", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<b>starter</b>")
	assert.Contains(t, msg.TextBody, "200 requests per minute")
	assert.Contains(t, msg.TextBody, "10000 requests per day")
}

func TestRender_MissingRequiredKey(t *testing.T) {
	_, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailAPIKeyWelcome,
		ToEmail: "pro@clubfitters.com",
		Data:    map[string]string{"name": "Jordan Pro"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := newTestRenderer().Render(types.EmailJob{Kind: types.EmailKind("carrier_pigeon")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestRender_HTMLEscapesUserContent(t *testing.T) {
	msg, err := newTestRenderer().Render(types.EmailJob{
		Kind:    types.EmailContactConfirmation,
		ToEmail: "sam@example.com",
		Data: map[string]string{
			"name":    "Sam",
			"message": `<script>alert("x")</script>`,
		},
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "&lt;script&gt;")
}

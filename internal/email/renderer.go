// Package email renders the transactional email templates. Rendering happens
// in the worker so the API only ships small EmailJob payloads through SQS.
package email

import (
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// templateSpec binds one EmailKind to its subject line, bodies, and the data
// keys the templates depend on.
type templateSpec struct {
	subject      string
	requiredKeys []string
	html         *template.Template
	text         *texttemplate.Template
}

// Renderer turns EmailJob payloads into ready-to-send emails.
type Renderer struct {
	docsURL string
	specs   map[types.EmailKind]*templateSpec
}

// NewRenderer creates a renderer. docsURL is injected into templates that
// link to documentation.
func NewRenderer(docsURL string) *Renderer {
	return &Renderer{
		docsURL: docsURL,
		specs:   buildSpecs(),
	}
}

// Render produces the email for a job. Missing template data keys are an
// error so half-rendered emails never leave the building.
func (r *Renderer) Render(job types.EmailJob) (external.Email, error) {
	spec, ok := r.specs[job.Kind]
	if !ok {
		return external.Email{}, fmt.Errorf("email: unknown kind %q", job.Kind)
	}

	for _, key := range spec.requiredKeys {
		if job.Data[key] == "" {
			return external.Email{}, fmt.Errorf("email: %s job missing data key %q", job.Kind, key)
		}
	}

	data := make(map[string]string, len(job.Data)+1)
	for k, v := range job.Data {
		data[k] = v
	}
	if data["docs_url"] == "" {
		data["docs_url"] = r.docsURL
	}

	var htmlBuf, textBuf strings.Builder
	if err := spec.html.Execute(&htmlBuf, data); err != nil {
		return external.Email{}, fmt.Errorf("email: render %s html: %w", job.Kind, err)
	}
	if err := spec.text.Execute(&textBuf, data); err != nil {
		return external.Email{}, fmt.Errorf("email: render %s text: %w", job.Kind, err)
	}

	subject, err := renderSubject(spec.subject, data)
	if err != nil {
		return external.Email{}, fmt.Errorf("email: render %s subject: %w", job.Kind, err)
	}

	return external.Email{
		ToEmail:  job.ToEmail,
		ToName:   job.ToName,
		Subject:  subject,
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}

func renderSubject(tmpl string, data map[string]string) (string, error) {
	t, err := texttemplate.New("subject").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildSpecs() map[types.EmailKind]*templateSpec {
	return map[types.EmailKind]*templateSpec{
		types.EmailAPIKeyWelcome: {
			subject:      "Your Golf Physics API Key is Ready",
			requiredKeys: []string{"name", "api_key"},
			html:         mustHTML("api_key_welcome", apiKeyWelcomeHTML),
			text:         mustText("api_key_welcome", apiKeyWelcomeText),
		},
		types.EmailContactConfirmation: {
			subject:      "Thanks for contacting Golf Physics API",
			requiredKeys: []string{"name", "message"},
			html:         mustHTML("contact_confirmation", contactConfirmationHTML),
			text:         mustText("contact_confirmation", contactConfirmationText),
		},
		types.EmailContactAdminAlert: {
			subject:      "{{.priority}} Lead: contact - {{.name}}",
			requiredKeys: []string{"name", "email", "message", "priority"},
			html:         mustHTML("contact_admin_alert", contactAdminAlertHTML),
			text:         mustText("contact_admin_alert", contactAdminAlertText),
		},
		types.EmailProspectAdminAlert: {
			subject:      "{{.priority}} Lead: api_key_request - {{.name}}",
			requiredKeys: []string{"name", "email", "priority"},
			html:         mustHTML("prospect_admin_alert", prospectAdminAlertHTML),
			text:         mustText("prospect_admin_alert", prospectAdminAlertText),
		},
		types.EmailPlanUpgraded: {
			subject:      "Your Golf Physics API plan is now {{.tier}}",
			requiredKeys: []string{"name", "tier", "requests_per_minute", "requests_per_day"},
			html:         mustHTML("plan_upgraded", planUpgradedHTML),
			text:         mustText("plan_upgraded", planUpgradedText),
		},
	}
}

func mustHTML(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}

func mustText(name, body string) *texttemplate.Template {
	return texttemplate.Must(texttemplate.New(name).Parse(body))
}

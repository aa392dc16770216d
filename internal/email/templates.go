package email

// Customer-facing templates keep the markup minimal so they render cleanly
// in every mail client. Admin alerts favor density over polish.

const apiKeyWelcomeHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<h2>Welcome to Golf Physics API</h2>
<p>Hi {{.name}},</p>
<p>Your developer API key is ready:</p>
<p style="background: #f4f4f4; padding: 12px; font-family: monospace;">{{.api_key}}</p>
<p>Keep this key secret. It is shown only once and cannot be recovered, only reissued.</p>
<p>Send it in the <code>X-API-Key</code> header on every request.</p>
<p><a href="{{.docs_url}}">Read the docs</a> to make your first trajectory call.</p>
<p>The Golf Physics API Team</p>
</body>
</html>`

const apiKeyWelcomeText = `Hi {{.name}},

Your Golf Physics API developer key is ready:

    {{.api_key}}

Keep this key secret. It is shown only once and cannot be recovered, only
reissued. Send it in the X-API-Key header on every request.

Docs: {{.docs_url}}

The Golf Physics API Team`

const contactConfirmationHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<h2>We got your message</h2>
<p>Hi {{.name}},</p>
<p>Thanks for reaching out to Golf Physics API. A member of the team will reply within one business day.</p>
<p>For reference, here is what you sent:</p>
<blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">{{.message}}</blockquote>
<p>The Golf Physics API Team</p>
</body>
</html>`

const contactConfirmationText = `Hi {{.name}},

Thanks for reaching out to Golf Physics API. A member of the team will
reply within one business day.

For reference, here is what you sent:

{{.message}}

The Golf Physics API Team`

const contactAdminAlertHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<h3>{{.priority}} contact form lead</h3>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><td><b>Name</b></td><td>{{.name}}</td></tr>
<tr><td><b>Email</b></td><td>{{.email}}</td></tr>
{{if .company}}<tr><td><b>Company</b></td><td>{{.company}}</td></tr>{{end}}
<tr><td><b>Message</b></td><td>{{.message}}</td></tr>
</table>
</body>
</html>`

const contactAdminAlertText = `{{.priority}} contact form lead

Name:    {{.name}}
Email:   {{.email}}
{{if .company}}Company: {{.company}}
{{end}}Message: {{.message}}`

const prospectAdminAlertHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<h3>{{.priority}} API key signup</h3>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><td><b>Name</b></td><td>{{.name}}</td></tr>
<tr><td><b>Email</b></td><td>{{.email}}</td></tr>
{{if .company}}<tr><td><b>Company</b></td><td>{{.company}}</td></tr>{{end}}
{{if .use_case}}<tr><td><b>Use case</b></td><td>{{.use_case}}</td></tr>{{end}}
{{if .expected_volume}}<tr><td><b>Expected volume</b></td><td>{{.expected_volume}}</td></tr>{{end}}
</table>
</body>
</html>`

const prospectAdminAlertText = `{{.priority}} API key signup

Name:  {{.name}}
Email: {{.email}}
{{if .company}}Company: {{.company}}
{{end}}{{if .use_case}}Use case: {{.use_case}}
{{end}}{{if .expected_volume}}Expected volume: {{.expected_volume}}{{end}}`

const planUpgradedHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<h2>Your upgrade is live</h2>
<p>Hi {{.name}},</p>
<p>Your Golf Physics API plan is now <b>{{.tier}}</b>. Your new limits took effect immediately:</p>
<ul>
<li>{{.requests_per_minute}} requests per minute</li>
<li>{{.requests_per_day}} requests per day</li>
</ul>
<p>Your existing API key keeps working; no code changes needed.</p>
<p>The Golf Physics API Team</p>
</body>
</html>`

const planUpgradedText = `Hi {{.name}},

Your Golf Physics API plan is now {{.tier}}. Your new limits took effect
immediately:

  - {{.requests_per_minute}} requests per minute
  - {{.requests_per_day}} requests per day

Your existing API key keeps working; no code changes needed.

The Golf Physics API Team`

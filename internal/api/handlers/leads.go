package handlers

import (
	"context"
	"strings"

	"golfphysics/internal/types"
)

// LeadStore persists captured sales leads. Implemented by db.LeadRepository.
type LeadStore interface {
	Create(ctx context.Context, lead *types.Lead) error
}

// EmailEnqueuer hands transactional email jobs to the queue. Implemented by
// queue.EmailProducer.
type EmailEnqueuer interface {
	Enqueue(ctx context.Context, job types.EmailJob) error
}

// CaptchaVerifier checks a reCAPTCHA token against a minimum score.
// Mirrors external.CaptchaVerifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, minScore float64) error
}

// highValueKeywords flag contact messages worth a sales follow-up. Matched
// case-insensitively against the message body.
var highValueKeywords = []string{
	"enterprise", "multi-location", "chain", "partnership",
	"100k", "1m", "million", "large scale", "bulk", "volume",
	"trackman", "inrange", "foresight", "arccos", "garmin",
	"topgolf", "pga", "tour", "professional", "commercial",
}

// golfTechDomains are email domains of known golf technology companies.
// A signup from one of these counts as a high-value indicator.
var golfTechDomains = []string{
	"trackman", "inrange", "foresight", "arccos", "garmin", "topgolf",
	"titleist", "callaway", "taylormade", "ping", "cobra",
}

// contactPriority classifies a contact form submission. Any high-value
// keyword in the message flags the lead.
func contactPriority(message string) types.LeadPriority {
	lower := strings.ToLower(message)
	for _, kw := range highValueKeywords {
		if strings.Contains(lower, kw) {
			return types.LeadPriorityHigh
		}
	}
	return types.LeadPriorityNormal
}

// prospectPriority classifies an API key request. Each of the following is
// one indicator; two or more flag the prospect as high value:
//
//   - a company name was given
//   - the stated use case mentions launch monitors, tournaments, or courses
//   - the expected volume is 10K+ per month
//   - the email is from a known golf tech domain
func prospectPriority(req types.APIKeyRequest) types.LeadPriority {
	indicators := 0

	if strings.TrimSpace(req.Company) != "" {
		indicators++
	}

	useCase := strings.ToLower(req.UseCase)
	for _, kw := range []string{"launch monitor", "launch_monitor", "tournament", "golf_course", "golf course"} {
		if strings.Contains(useCase, kw) {
			indicators++
			break
		}
	}

	volume := strings.ToLower(req.ExpectedVolume)
	for _, kw := range []string{"10k", "100k", "million", "1m"} {
		if strings.Contains(volume, kw) {
			indicators++
			break
		}
	}

	email := strings.ToLower(req.Email)
	for _, domain := range golfTechDomains {
		if strings.Contains(email, domain) {
			indicators++
			break
		}
	}

	if indicators >= 2 {
		return types.LeadPriorityHigh
	}
	return types.LeadPriorityNormal
}

// alertPriorityLabel renders a lead priority for admin alert subjects.
func alertPriorityLabel(p types.LeadPriority) string {
	if p == types.LeadPriorityHigh {
		return "HIGH VALUE"
	}
	return "New"
}

package types

// PlanTier identifies the billing plan an API client is on.
type PlanTier string

const (
	TierDeveloper    PlanTier = "developer"
	TierStarter      PlanTier = "starter"
	TierProfessional PlanTier = "professional"
	TierBusiness     PlanTier = "business"
	TierEnterprise   PlanTier = "enterprise"
)

// Valid reports whether the tier is one of the five known plans.
func (t PlanTier) Valid() bool {
	switch t {
	case TierDeveloper, TierStarter, TierProfessional, TierBusiness, TierEnterprise:
		return true
	}
	return false
}

// LeadSource identifies which public form produced a lead.
type LeadSource string

const (
	LeadSourceContactForm   LeadSource = "contact_form"
	LeadSourceAPIKeyRequest LeadSource = "api_key_request"
)

// LeadPriority flags leads the sales team should look at first.
type LeadPriority string

const (
	LeadPriorityNormal LeadPriority = "normal"
	LeadPriorityHigh   LeadPriority = "high"
)

// LeadStatus tracks where a lead is in the sales pipeline.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// EmailKind selects the template for a queued transactional email.
type EmailKind string

const (
	EmailContactConfirmation EmailKind = "contact_confirmation"
	EmailContactAdminAlert   EmailKind = "contact_admin_alert"
	EmailAPIKeyWelcome       EmailKind = "api_key_welcome"
	EmailProspectAdminAlert  EmailKind = "prospect_admin_alert"
	EmailPlanUpgraded        EmailKind = "plan_upgraded"
)

// SubscriptionStatus represents the state of a Stripe billing subscription.
type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusTrialing SubscriptionStatus = "trialing"
)

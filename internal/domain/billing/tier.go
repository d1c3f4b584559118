package billing

// Tier represents a subscription level gating feature access
type Tier string

const (
	TierStarter      Tier = "starter"
	TierStarterPaid  Tier = "starter_paid"
	TierProfessional Tier = "professional"
	TierBusiness     Tier = "business"
)

// IsValid checks if the tier is a valid Tier
func (t Tier) IsValid() bool {
	switch t {
	case TierStarter, TierStarterPaid, TierProfessional, TierBusiness:
		return true
	}
	return false
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// rank orders tiers for upgrade comparisons
func (t Tier) rank() int {
	switch t {
	case TierStarter:
		return 0
	case TierStarterPaid:
		return 1
	case TierProfessional:
		return 2
	case TierBusiness:
		return 3
	}
	return -1
}

// AtLeast returns true if the tier is the given tier or higher
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() >= other.rank()
}

// Feature is a tier-limited capability
type Feature string

const (
	FeatureInvoices         Feature = "invoices"          // Issued invoices per month
	FeatureCurrencyAccounts Feature = "currency_accounts" // Accounts per business
	FeatureTeamMembers      Feature = "team_members"      // Members per business
	FeatureExports          Feature = "exports"           // Data exports per month
	FeatureEmailSends       Feature = "email_sends"       // Invoice emails per month
	FeatureAPIAccess        Feature = "api_access"        // Programmatic access
)

// IsValid checks if the feature is a valid Feature
func (f Feature) IsValid() bool {
	switch f {
	case FeatureInvoices, FeatureCurrencyAccounts, FeatureTeamMembers,
		FeatureExports, FeatureEmailSends, FeatureAPIAccess:
		return true
	}
	return false
}

// String returns the string representation of the feature
func (f Feature) String() string {
	return string(f)
}

// DisplayName returns a human-readable feature name
func (f Feature) DisplayName() string {
	switch f {
	case FeatureInvoices:
		return "Issued invoices"
	case FeatureCurrencyAccounts:
		return "Currency accounts"
	case FeatureTeamMembers:
		return "Team members"
	case FeatureExports:
		return "Data exports"
	case FeatureEmailSends:
		return "Invoice emails"
	case FeatureAPIAccess:
		return "API access"
	}
	return string(f)
}

// Unlimited marks a feature with no numeric cap
const Unlimited int64 = -1

// TierLimits maps each feature to its monthly or absolute cap for a
// tier. A limit of 0 disables the feature entirely.
type TierLimits map[Feature]int64

// limitsByTier is the built-in limit table. It mirrors the published
// pricing page and is intentionally data, not policy logic.
var limitsByTier = map[Tier]TierLimits{
	TierStarter: {
		FeatureInvoices:         5,
		FeatureCurrencyAccounts: 1,
		FeatureTeamMembers:      1,
		FeatureExports:          0,
		FeatureEmailSends:       5,
		FeatureAPIAccess:        0,
	},
	TierStarterPaid: {
		FeatureInvoices:         25,
		FeatureCurrencyAccounts: 1,
		FeatureTeamMembers:      3,
		FeatureExports:          3,
		FeatureEmailSends:       25,
		FeatureAPIAccess:        0,
	},
	TierProfessional: {
		FeatureInvoices:         200,
		FeatureCurrencyAccounts: 5,
		FeatureTeamMembers:      10,
		FeatureExports:          20,
		FeatureEmailSends:       200,
		FeatureAPIAccess:        1,
	},
	TierBusiness: {
		FeatureInvoices:         Unlimited,
		FeatureCurrencyAccounts: Unlimited,
		FeatureTeamMembers:      Unlimited,
		FeatureExports:          Unlimited,
		FeatureEmailSends:       Unlimited,
		FeatureAPIAccess:        1,
	},
}

// LimitFor returns the cap for a feature at a tier
func LimitFor(tier Tier, feature Feature) int64 {
	limits, ok := limitsByTier[tier]
	if !ok {
		return 0
	}
	limit, ok := limits[feature]
	if !ok {
		return 0
	}
	return limit
}

// LimitsFor returns a copy of the full limit table for a tier
func LimitsFor(tier Tier) TierLimits {
	out := make(TierLimits, len(limitsByTier[tier]))
	for f, l := range limitsByTier[tier] {
		out[f] = l
	}
	return out
}

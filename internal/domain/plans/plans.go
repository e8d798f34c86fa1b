package plans

import "github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

// Plan is one purchasable price. Plans are config-driven, not a table: the
// product has exactly one paid tier with two billing intervals.
type Plan struct {
	Name          string `json:"name"`
	Tier          string `json:"tier"`
	Interval      string `json:"interval"` // month/year
	StripePriceID string `json:"price_id"`
}

// Limits are the per-tier usage caps. -1 means unlimited.
type Limits struct {
	MaxEvents    int `json:"max_events"`
	MaxReminders int `json:"max_reminders"`
}

func ForTier(tier string) Limits {
	if tier == profiles.TierPro {
		return Limits{MaxEvents: -1, MaxReminders: -1}
	}
	return Limits{MaxEvents: 25, MaxReminders: 5}
}

// AllowsEvent reports whether a calendar already holding current entries may
// take one more under these limits.
func (l Limits) AllowsEvent(current int64) bool {
	return l.MaxEvents < 0 || current < int64(l.MaxEvents)
}

// Available lists the purchasable plans for the configured price ids.
// Prices without an id (not configured for this environment) are omitted.
func Available(proMonthlyPriceID, proYearlyPriceID string) []Plan {
	plans := []Plan{}
	if proMonthlyPriceID != "" {
		plans = append(plans, Plan{Name: "Pro Monthly", Tier: profiles.TierPro, Interval: "month", StripePriceID: proMonthlyPriceID})
	}
	if proYearlyPriceID != "" {
		plans = append(plans, Plan{Name: "Pro Yearly", Tier: profiles.TierPro, Interval: "year", StripePriceID: proYearlyPriceID})
	}
	return plans
}

// Package subscription holds the static plan table: which checks each tier
// unlocks and what it costs.
package subscription

import (
	"fmt"
	"strings"
)

type Level string

const (
	Basic      Level = "Basic"
	Pro        Level = "Pro"
	Enterprise Level = "Enterprise"
)

// Levels lists the tiers from cheapest to most expensive.
var Levels = []Level{Basic, Pro, Enterprise}

// Feature names a gated capability. Values match the JSON keys of Features.
type Feature string

const (
	FeatureEmailBreach       Feature = "emailBreach"
	FeatureEmailReputation   Feature = "emailReputation"
	FeatureDomainLookup      Feature = "domainLookup"
	FeatureWebhookAlerts     Feature = "webhookAlerts"
	FeatureThreatFeed        Feature = "threatFeed"
	FeatureReportExport      Feature = "reportExport"
	FeatureHistoricalStorage Feature = "historicalStorageDays"
)

type Features struct {
	EmailBreach           bool `json:"emailBreach"`
	EmailReputation       bool `json:"emailReputation"`
	DomainLookup          bool `json:"domainLookup"`
	WebhookAlerts         bool `json:"webhookAlerts"`
	ThreatFeed            bool `json:"threatFeed"`
	ReportExport          bool `json:"reportExport"`
	HistoricalStorageDays int  `json:"historicalStorageDays"`
}

type Pricing struct {
	Price  string `json:"price"`
	Period string `json:"period"`
}

// Plan is one row of the public plan table.
type Plan struct {
	Level    Level    `json:"level"`
	Features Features `json:"features"`
	Pricing  Pricing  `json:"pricing"`
}

var features = map[Level]Features{
	Basic: {
		EmailBreach:           true,
		EmailReputation:       true,
		DomainLookup:          true,
		HistoricalStorageDays: 7,
	},
	Pro: {
		EmailBreach:           true,
		EmailReputation:       true,
		DomainLookup:          true,
		WebhookAlerts:         true,
		ReportExport:          true,
		HistoricalStorageDays: 30,
	},
	Enterprise: {
		EmailBreach:           true,
		EmailReputation:       true,
		DomainLookup:          true,
		WebhookAlerts:         true,
		ThreatFeed:            true,
		ReportExport:          true,
		HistoricalStorageDays: 365,
	},
}

var pricing = map[Level]Pricing{
	Basic:      {Price: "Gratis", Period: ""},
	Pro:        {Price: "€49", Period: "/mese"},
	Enterprise: {Price: "€199", Period: "/mese"},
}

// ParseLevel matches a tier name case-insensitively.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("subscription: unknown level %q", s)
}

// FeaturesFor returns the feature set of level. Unknown levels get Basic.
func FeaturesFor(level Level) Features {
	if f, ok := features[level]; ok {
		return f
	}
	return features[Basic]
}

func PricingFor(level Level) Pricing {
	if p, ok := pricing[level]; ok {
		return p
	}
	return pricing[Basic]
}

// CanUse reports whether level unlocks feature. Historical storage counts as
// usable when any retention is granted.
func CanUse(level Level, feature Feature) bool {
	f := FeaturesFor(level)
	switch feature {
	case FeatureEmailBreach:
		return f.EmailBreach
	case FeatureEmailReputation:
		return f.EmailReputation
	case FeatureDomainLookup:
		return f.DomainLookup
	case FeatureWebhookAlerts:
		return f.WebhookAlerts
	case FeatureThreatFeed:
		return f.ThreatFeed
	case FeatureReportExport:
		return f.ReportExport
	case FeatureHistoricalStorage:
		return f.HistoricalStorageDays > 0
	default:
		return false
	}
}

// Plans returns the full table in tier order.
func Plans() []Plan {
	plans := make([]Plan, 0, len(Levels))
	for _, l := range Levels {
		plans = append(plans, Plan{Level: l, Features: FeaturesFor(l), Pricing: PricingFor(l)})
	}
	return plans
}

package risk

import (
	"fmt"
	"slices"
)

// Breach is a historical data-exposure event for an email address,
// in the provider's field naming.
type Breach struct {
	Name         string   `json:"Name"`
	Title        string   `json:"Title"`
	Domain       string   `json:"Domain"`
	BreachDate   string   `json:"BreachDate"`
	AddedDate    string   `json:"AddedDate,omitempty"`
	ModifiedDate string   `json:"ModifiedDate,omitempty"`
	PwnCount     int      `json:"PwnCount"`
	Description  string   `json:"Description,omitempty"`
	LogoPath     string   `json:"LogoPath,omitempty"`
	DataClasses  []string `json:"DataClasses"`
	IsVerified   bool     `json:"IsVerified"`
	IsFabricated bool     `json:"IsFabricated"`
	IsSensitive  bool     `json:"IsSensitive"`
	IsRetired    bool     `json:"IsRetired"`
	IsSpamList   bool     `json:"IsSpamList"`
	IsMalware    bool     `json:"IsMalware"`
}

// ExposesPasswords reports whether the breach leaked passwords or password hints.
func (b Breach) ExposesPasswords() bool {
	return slices.Contains(b.DataClasses, "Passwords") || slices.Contains(b.DataClasses, "Password hints")
}

// ReputationDetails are the reputation provider's per-signal flags.
type ReputationDetails struct {
	Blacklisted             bool     `json:"blacklisted"`
	MaliciousActivity       bool     `json:"malicious_activity"`
	MaliciousActivityRecent bool     `json:"malicious_activity_recent"`
	CredentialsLeaked       bool     `json:"credentials_leaked"`
	CredentialsLeakedRecent bool     `json:"credentials_leaked_recent"`
	DataBreach              bool     `json:"data_breach"`
	FirstSeen               string   `json:"first_seen,omitempty"`
	LastSeen                string   `json:"last_seen,omitempty"`
	DomainExists            bool     `json:"domain_exists"`
	DomainReputation        string   `json:"domain_reputation,omitempty"`
	NewDomain               bool     `json:"new_domain"`
	DaysSinceDomainCreation int      `json:"days_since_domain_creation"`
	SuspiciousTLD           bool     `json:"suspicious_tld"`
	Spam                    bool     `json:"spam"`
	FreeProvider            bool     `json:"free_provider"`
	Disposable              bool     `json:"disposable"`
	Deliverable             bool     `json:"deliverable"`
	AcceptAll               bool     `json:"accept_all"`
	ValidMX                 bool     `json:"valid_mx"`
	SpfStrict               bool     `json:"spf_strict"`
	DmarcEnforced           bool     `json:"dmarc_enforced"`
	Profiles                []string `json:"profiles,omitempty"`
}

// EmailReputation is the normalized email reputation record.
type EmailReputation struct {
	Email      string            `json:"email"`
	Reputation string            `json:"reputation"` // low | medium | high
	Suspicious bool              `json:"suspicious"`
	References int               `json:"references"`
	Details    ReputationDetails `json:"details"`
}

const (
	weightBreachPerIncident = 10
	capBreaches             = 50
	weightPasswordExposure  = 15
	weightSuspiciousEmail   = 25
	weightBlacklisted       = 15
	weightMaliciousActivity = 20
	weightReputationLow     = 15
	weightReputationMedium  = 5
)

var emailSummaries = summaries{
	LevelLow:      "L'analisi non ha rilevato segnalazioni critiche nelle fonti consultate. Tuttavia, l'assenza di segnalazioni non garantisce che non esistano rischi futuri.",
	LevelModerate: "Sono state rilevate alcune segnalazioni che richiedono attenzione. Si consiglia di valutare le informazioni e considerare misure preventive.",
	LevelHigh:     "Questa email presenta segnalazioni significative. Si raccomanda di adottare misure di sicurezza e considerare il cambio delle credenziali associate.",
}

const (
	emailNoBreachLine     = "Non sono stati trovati data breach noti per questa email."
	emailPasswordLine     = "Alcuni breach includono password esposte, aumentando il rischio."
	emailSuspiciousLine   = "L'email risulta segnalata come sospetta da fonti di intelligence."
	emailBlacklistedLine  = "L'email è presente in blacklist conosciute."
	emailMaliciousLine    = "Sono state rilevate attività malevole associate a questa email."
	emailPartialLine      = "Nota: alcune fonti non erano disponibili, il risultato potrebbe essere parziale."
	emailReputationLow    = "low"
	emailReputationMedium = "medium"
)

// EmailScorer scores breach history and email reputation. It is stateless.
type EmailScorer struct {
	thresholds Thresholds
}

// NewEmailScorer creates an EmailScorer with the default thresholds.
func NewEmailScorer() *EmailScorer {
	return &EmailScorer{thresholds: DefaultThresholds()}
}

// Score evaluates an email address. breachCount drives the breach factor;
// breaches are only inspected for password exposure and may be shorter than
// breachCount. A nil reputation marks the result partial.
func (s *EmailScorer) Score(breachCount int, breaches []Breach, reputation *EmailReputation) Assessment {
	score := 0
	explanation := []string{}
	sources := []string{}
	partial := false

	if breachCount > 0 {
		score += capped(breachCount, weightBreachPerIncident, capBreaches)
		if breachCount == 1 {
			explanation = append(explanation, "Questa email è stata coinvolta in 1 data breach noto.")
		} else {
			explanation = append(explanation, fmt.Sprintf("Questa email è stata coinvolta in %d data breach noti.", breachCount))
		}

		if slices.ContainsFunc(breaches, Breach.ExposesPasswords) {
			score += weightPasswordExposure
			explanation = append(explanation, emailPasswordLine)
		}
	} else {
		explanation = append(explanation, emailNoBreachLine)
	}
	// the breach source was consulted either way
	sources = append(sources, SourceHIBP)

	if reputation != nil {
		sources = append(sources, SourceEmailRep)

		if reputation.Suspicious {
			score += weightSuspiciousEmail
			explanation = append(explanation, emailSuspiciousLine)
		}
		if reputation.Details.Blacklisted {
			score += weightBlacklisted
			explanation = append(explanation, emailBlacklistedLine)
		}
		if reputation.Details.MaliciousActivity {
			score += weightMaliciousActivity
			explanation = append(explanation, emailMaliciousLine)
		}

		switch reputation.Reputation {
		case emailReputationLow:
			score += weightReputationLow
		case emailReputationMedium:
			score += weightReputationMedium
		}
	} else {
		partial = true
	}

	score = clamp(score, 0, 100)
	level := s.thresholds.LevelFor(score)

	if partial {
		explanation = append(explanation, emailPartialLine)
	}

	return Assessment{
		Score:       score,
		Level:       level,
		Summary:     emailSummaries.For(level),
		Explanation: explanation,
		Sources:     sources,
		Partial:     partial,
	}
}

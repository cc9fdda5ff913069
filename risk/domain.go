package risk

import (
	"fmt"
	"math"
	"time"
)

// AnalysisStats are the engine verdict counters of the last domain analysis.
type AnalysisStats struct {
	Harmless   int `json:"harmless"`
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Undetected int `json:"undetected"`
	Timeout    int `json:"timeout"`
}

// Total is the number of engines that returned a verdict.
func (s AnalysisStats) Total() int {
	return s.Harmless + s.Malicious + s.Suspicious + s.Undetected
}

// nonNegative zeroes counters a provider reported below zero.
func (s AnalysisStats) nonNegative() AnalysisStats {
	return AnalysisStats{
		Harmless:   max(s.Harmless, 0),
		Malicious:  max(s.Malicious, 0),
		Suspicious: max(s.Suspicious, 0),
		Undetected: max(s.Undetected, 0),
		Timeout:    max(s.Timeout, 0),
	}
}

// DomainAnalysis is the normalized domain reputation record.
// Reputation and CreationDate are nil when the provider did not report them.
type DomainAnalysis struct {
	Domain               string            `json:"domain"`
	Reputation           *int              `json:"reputation"`
	Categories           map[string]string `json:"categories,omitempty"`
	LastAnalysisDate     *time.Time        `json:"lastAnalysisDate"`
	Stats                AnalysisStats     `json:"stats"`
	Registrar            string            `json:"registrar,omitempty"`
	CreationDate         *time.Time        `json:"creationDate"`
	LastModificationDate *time.Time        `json:"lastModificationDate"`
}

const (
	weightMaliciousPerEngine  = 15
	capMalicious              = 60
	weightSuspiciousPerEngine = 8
	capSuspicious             = 30
	weightNegativeReputation  = 2
	capNegativeReputation     = 20
	bonusPositiveReputation   = 5
	weightDomainVeryNew       = 10 // younger than 3 months
	weightDomainNew           = 5  // 3 to 6 months

	monthLength = 30 * 24 * time.Hour
)

var domainSummaries = summaries{
	LevelLow:      "L'analisi non ha rilevato segnalazioni significative per questo dominio. Le fonti consultate non indicano rischi evidenti, ma si consiglia sempre prudenza.",
	LevelModerate: "Sono state rilevate alcune segnalazioni per questo dominio. Si consiglia di procedere con cautela e verificare ulteriormente prima di interagire.",
	LevelHigh:     "Questo dominio presenta segnalazioni critiche da più fonti. Si sconsiglia l'interazione e si raccomanda di evitare di condividere dati sensibili.",
}

const (
	domainNoDataSummary     = "Non è stato possibile analizzare questo dominio. I dati potrebbero non essere disponibili."
	domainNoDataExplanation = "Nessun dato disponibile per questo dominio nelle fonti consultate."
	domainNoScansLine       = "Nessun dato di analisi disponibile per questo dominio."
	domainPartialLine       = "Alcune fonti non erano disponibili, il risultato potrebbe essere parziale."
	domainRecentLine        = "Il dominio è stato creato di recente (meno di 3 mesi fa)."
)

// DomainScorer scores domain reputation records. It keeps no state
// besides its clock, so one instance can serve concurrent requests.
type DomainScorer struct {
	now        func() time.Time
	thresholds Thresholds
}

// NewDomainScorer creates a DomainScorer using the wall clock.
func NewDomainScorer() *DomainScorer {
	return &DomainScorer{now: time.Now, thresholds: DefaultThresholds()}
}

// WithClock returns a copy of the scorer that reads the current time from now.
func (s *DomainScorer) WithClock(now func() time.Time) *DomainScorer {
	c := *s
	c.now = now
	return &c
}

// Score evaluates a domain analysis. A nil analysis means the provider was
// unavailable and yields a fixed partial result.
func (s *DomainScorer) Score(analysis *DomainAnalysis) Assessment {
	sources := []string{SourceVirusTotal}

	if analysis == nil {
		return Assessment{
			Score:       0,
			Level:       LevelLow,
			Summary:     domainNoDataSummary,
			Explanation: []string{domainNoDataExplanation},
			Sources:     sources,
			Partial:     true,
		}
	}

	score := 0
	explanation := []string{}
	partial := false
	stats := analysis.Stats.nonNegative()

	if stats.Malicious > 0 {
		score += capped(stats.Malicious, weightMaliciousPerEngine, capMalicious)
		if stats.Malicious == 1 {
			explanation = append(explanation, "1 motore antivirus ha segnalato questo dominio come malevolo.")
		} else {
			explanation = append(explanation, fmt.Sprintf("%d motori antivirus hanno segnalato questo dominio come malevolo.", stats.Malicious))
		}
	}

	if stats.Suspicious > 0 {
		score += capped(stats.Suspicious, weightSuspiciousPerEngine, capSuspicious)
		if stats.Suspicious == 1 {
			explanation = append(explanation, "1 motore ha classificato il dominio come sospetto.")
		} else {
			explanation = append(explanation, fmt.Sprintf("%d motori hanno classificato il dominio come sospetto.", stats.Suspicious))
		}
	}

	if rep := analysis.Reputation; rep != nil {
		switch {
		case *rep < 0:
			score += capped(-max(*rep, -capNegativeReputation), weightNegativeReputation, capNegativeReputation)
			explanation = append(explanation, fmt.Sprintf("Il dominio ha una reputazione negativa (%d) nella community.", *rep))
		case *rep > 0:
			// positive reputation only lowers the running total, never below zero
			score = max(0, score-bonusPositiveReputation)
		}
	}

	if analysis.CreationDate != nil {
		ageMonths := float64(s.now().Sub(*analysis.CreationDate)) / float64(monthLength)
		if ageMonths < 3 {
			score += weightDomainVeryNew
			explanation = append(explanation, domainRecentLine)
		} else if ageMonths < 6 {
			score += weightDomainNew
		}
	}

	if stats.Malicious == 0 && stats.Suspicious == 0 {
		total := stats.Total()
		if stats.Harmless > 0 && total > 0 {
			percent := int(math.Round(float64(stats.Harmless) / float64(total) * 100))
			explanation = append(explanation, fmt.Sprintf("%d motori (%d%%) lo classificano come sicuro.", stats.Harmless, percent))
		}
		if total == 0 {
			explanation = append(explanation, domainNoScansLine)
			partial = true
		}
	}

	score = clamp(score, 0, 100)
	level := s.thresholds.LevelFor(score)

	if partial && len(explanation) == 0 {
		explanation = append(explanation, domainPartialLine)
	}

	return Assessment{
		Score:       score,
		Level:       level,
		Summary:     domainSummaries.For(level),
		Explanation: explanation,
		Sources:     sources,
		Partial:     partial,
	}
}

package vetting

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/francescoattisano63-source/cyber-omega-guardian/risk"
)

// DomainSourceStatus is omitted for WHOIS when the lookup is disabled.
type DomainSourceStatus struct {
	VirusTotal Status `json:"virustotal"`
	Whois      Status `json:"whois,omitempty"`
}

type DomainReport struct {
	Domain         string               `json:"domain"`
	Analysis       *risk.DomainAnalysis `json:"analysis"`
	RiskAssessment risk.Assessment      `json:"riskAssessment"`
	SourceStatus   DomainSourceStatus   `json:"sourceStatus"`
	Registration   *Registration        `json:"registration,omitempty"`
}

type EmailSourceStatus struct {
	HIBP     Status `json:"hibp"`
	EmailRep Status `json:"emailrep"`
}

type EmailReport struct {
	Email          string                `json:"email"`
	Breaches       []risk.Breach         `json:"breaches"`
	BreachCount    int                   `json:"breachCount"`
	Reputation     *risk.EmailReputation `json:"reputation"`
	RiskAssessment risk.Assessment       `json:"riskAssessment"`
	SourceStatus   EmailSourceStatus     `json:"sourceStatus"`
}

// DomainSource fetches a domain reputation report.
type DomainSource interface {
	Domain(ctx context.Context, domain string) Result[*risk.DomainAnalysis]
}

// RegistrationSource fetches WHOIS registration data.
type RegistrationSource interface {
	Registration(ctx context.Context, domain string) Result[*Registration]
}

// BreachSource lists the breaches an address appears in.
type BreachSource interface {
	Breaches(ctx context.Context, email string) Result[[]risk.Breach]
}

// ReputationSource fetches an email reputation record.
type ReputationSource interface {
	Lookup(ctx context.Context, email string) Result[*risk.EmailReputation]
}

// Checker joins the upstream sources and scores the result. Registration
// may be nil to skip WHOIS.
type Checker struct {
	Domains      DomainSource
	Registration RegistrationSource
	Breaches     BreachSource
	Reputation   ReputationSource

	DomainScorer *risk.DomainScorer
	EmailScorer  *risk.EmailScorer
}

func NewChecker(domains DomainSource, registration RegistrationSource, breaches BreachSource, reputation ReputationSource) *Checker {
	return &Checker{
		Domains:      domains,
		Registration: registration,
		Breaches:     breaches,
		Reputation:   reputation,
		DomainScorer: risk.NewDomainScorer(),
		EmailScorer:  risk.NewEmailScorer(),
	}
}

// CheckDomain queries the domain sources in parallel. The input must
// already be validated.
func (c *Checker) CheckDomain(ctx context.Context, domain string) DomainReport {
	var (
		analysis Result[*risk.DomainAnalysis]
		reg      Result[*Registration]
	)

	// goroutines never fail, so one slow source cannot cancel the other
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		analysis = c.Domains.Domain(gctx, domain)
		return nil
	})

	if c.Registration != nil {
		g.Go(func() error {
			reg = c.Registration.Registration(gctx, domain)
			return nil
		})
	}

	_ = g.Wait()

	report := DomainReport{
		Domain:         domain,
		Analysis:       analysis.Data,
		RiskAssessment: c.DomainScorer.Score(analysis.Data),
		SourceStatus:   DomainSourceStatus{VirusTotal: analysis.Status()},
	}
	if c.Registration != nil {
		report.SourceStatus.Whois = reg.Status()
		report.Registration = reg.Data
	}
	return report
}

// CheckEmail queries the breach and reputation sources in parallel. The
// input must already be validated.
func (c *Checker) CheckEmail(ctx context.Context, email string) EmailReport {
	var (
		breaches   Result[[]risk.Breach]
		reputation Result[*risk.EmailReputation]
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		breaches = c.Breaches.Breaches(gctx, email)
		return nil
	})

	g.Go(func() error {
		reputation = c.Reputation.Lookup(gctx, email)
		return nil
	})

	_ = g.Wait()

	list := breaches.Data
	if list == nil {
		list = []risk.Breach{}
	}

	return EmailReport{
		Email:          email,
		Breaches:       list,
		BreachCount:    len(list),
		Reputation:     reputation.Data,
		RiskAssessment: c.EmailScorer.Score(len(list), list, reputation.Data),
		SourceStatus: EmailSourceStatus{
			HIBP:     breaches.Status(),
			EmailRep: reputation.Status(),
		},
	}
}

package vetting

import (
	"context"
	"errors"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
)

const sourceWhois = "whois"

// Registration is the WHOIS registration record of a domain. Dates use the
// dd/mm/yyyy form shown to users and are empty when not published.
type Registration struct {
	Domain    string `json:"domain"`
	Registrar string `json:"registrar,omitempty"`
	CreatedOn string `json:"createdOn"`
	UpdatedOn string `json:"updatedOn,omitempty"`
	ExpiresOn string `json:"expiresOn,omitempty"`
	AgeDays   int    `json:"ageDays"`
}

// LookupFunc returns the raw WHOIS text for domain.
type LookupFunc func(domain string) (string, error)

// WhoisClient resolves registration data over the WHOIS protocol.
type WhoisClient struct {
	lookup  LookupFunc
	timeout time.Duration
	now     func() time.Time
	opts    options
}

func NewWhoisClient(cfg config.WhoisConfig, opts ...Option) *WhoisClient {
	wc := whois.NewClient().SetTimeout(cfg.Timeout)
	return &WhoisClient{
		lookup:  func(domain string) (string, error) { return wc.Whois(domain) },
		timeout: cfg.Timeout,
		now:     time.Now,
		opts:    buildOptions(cfg.Timeout, opts),
	}
}

// WithLookup replaces the network lookup, mainly for tests.
func (c *WhoisClient) WithLookup(lookup LookupFunc, now func() time.Time) *WhoisClient {
	cp := *c
	cp.lookup = lookup
	if now != nil {
		cp.now = now
	}
	return &cp
}

var (
	errNoRegistration = errors.New("no registration data")
	errNoCreationDate = errors.New("creation date not published")
)

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"02/01/2006",
}

func parseWhoisDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, l := range whoisDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// Registration looks domain up, walking up to the parent domain when the
// registry has no record for a subdomain.
func (c *WhoisClient) Registration(ctx context.Context, domain string) Result[*Registration] {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	type outcome struct {
		reg *Registration
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		reg, err := c.resolve(domain)
		done <- outcome{reg, err}
	}()

	select {
	case <-ctx.Done():
		c.opts.report(sourceWhois, ctx.Err())
		return unavailable[*Registration]()
	case out := <-done:
		c.opts.report(sourceWhois, out.err)
		if out.err != nil {
			return unavailable[*Registration]()
		}
		return available(out.reg)
	}
}

func (c *WhoisClient) resolve(domain string) (*Registration, error) {
	raw, err := c.lookup(domain)
	if err != nil {
		return nil, err
	}

	info, err := parser.Parse(raw)
	if err != nil || info.Domain == nil {
		// e.g. mail.example.com -> example.com
		if parts := strings.Split(domain, "."); len(parts) > 2 {
			return c.resolve(strings.Join(parts[1:], "."))
		}
		if err == nil {
			err = errNoRegistration
		}
		return nil, err
	}

	created := parseWhoisDate(info.Domain.CreatedDate)
	if created.IsZero() {
		return nil, errNoCreationDate
	}

	reg := &Registration{
		Domain:    domain,
		CreatedOn: formatDate(created),
		UpdatedOn: formatDate(parseWhoisDate(info.Domain.UpdatedDate)),
		ExpiresOn: formatDate(parseWhoisDate(info.Domain.ExpirationDate)),
		AgeDays:   int(c.now().Sub(created).Hours() / 24),
	}
	if info.Registrar != nil {
		reg.Registrar = info.Registrar.Name
	}
	return reg, nil
}

package vetting

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/risk"
)

const sourceEmailRep = "emailrep"

// EmailRepClient queries emailrep.io. The API key is optional.
type EmailRepClient struct {
	baseURL string
	apiKey  string
	opts    options
}

func NewEmailRepClient(cfg config.ProviderConfig, opts ...Option) *EmailRepClient {
	return &EmailRepClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		opts:    buildOptions(cfg.Timeout, opts),
	}
}

// Lookup returns the reputation record for email. An unknown address is
// available with no record.
func (c *EmailRepClient) Lookup(ctx context.Context, email string) Result[*risk.EmailReputation] {
	header := http.Header{}
	header.Set("User-Agent", c.opts.userAgent)
	if c.apiKey != "" {
		header.Set("Key", c.apiKey)
	}

	rep := &risk.EmailReputation{}
	found, err := getJSON(ctx, c.opts.client, c.baseURL+"/"+url.PathEscape(email), header, rep)
	c.opts.report(sourceEmailRep, err)
	if err != nil {
		return unavailable[*risk.EmailReputation]()
	}
	if !found {
		return available[*risk.EmailReputation](nil)
	}
	if rep.Email == "" {
		rep.Email = email
	}
	return available(rep)
}

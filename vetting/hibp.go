package vetting

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/risk"
)

const sourceHIBP = "hibp"

// HIBPClient queries the Have I Been Pwned breached-account API.
type HIBPClient struct {
	baseURL string
	apiKey  string
	opts    options
}

func NewHIBPClient(cfg config.ProviderConfig, opts ...Option) *HIBPClient {
	return &HIBPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		opts:    buildOptions(cfg.Timeout, opts),
	}
}

// Breaches lists the breaches the address appears in. An address with no
// breaches is available with an empty list.
func (c *HIBPClient) Breaches(ctx context.Context, email string) Result[[]risk.Breach] {
	if c.apiKey == "" {
		c.opts.report(sourceHIBP, errMissingAPIKey)
		return unavailable[[]risk.Breach]()
	}

	header := http.Header{}
	header.Set("hibp-api-key", c.apiKey)
	header.Set("User-Agent", c.opts.userAgent)

	endpoint := c.baseURL + "/api/v3/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"

	var breaches []risk.Breach
	found, err := getJSON(ctx, c.opts.client, endpoint, header, &breaches)
	c.opts.report(sourceHIBP, err)
	if err != nil {
		return unavailable[[]risk.Breach]()
	}
	if !found || breaches == nil {
		breaches = []risk.Breach{}
	}
	return available(breaches)
}

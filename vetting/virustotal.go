package vetting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/risk"
)

const sourceVirusTotal = "virustotal"

// VirusTotalClient fetches domain reports from the VirusTotal v3 API.
type VirusTotalClient struct {
	baseURL string
	apiKey  string
	opts    options
}

func NewVirusTotalClient(cfg config.ProviderConfig, opts ...Option) *VirusTotalClient {
	return &VirusTotalClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		opts:    buildOptions(cfg.Timeout, opts),
	}
}

type vtDomainResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats    risk.AnalysisStats `json:"last_analysis_stats"`
			Reputation           json.RawMessage    `json:"reputation"`
			Categories           map[string]string  `json:"categories"`
			Registrar            string             `json:"registrar"`
			CreationDate         *int64             `json:"creation_date"`
			LastAnalysisDate     *int64             `json:"last_analysis_date"`
			LastModificationDate *int64             `json:"last_modification_date"`
		} `json:"attributes"`
	} `json:"data"`
}

// Domain returns the normalized analysis for domain. A domain unknown to the
// provider is available with no analysis.
func (c *VirusTotalClient) Domain(ctx context.Context, domain string) Result[*risk.DomainAnalysis] {
	if c.apiKey == "" {
		c.opts.report(sourceVirusTotal, errMissingAPIKey)
		return unavailable[*risk.DomainAnalysis]()
	}

	header := http.Header{}
	header.Set("x-apikey", c.apiKey)

	var body vtDomainResponse
	found, err := getJSON(ctx, c.opts.client, c.baseURL+"/api/v3/domains/"+url.PathEscape(domain), header, &body)
	c.opts.report(sourceVirusTotal, err)
	if err != nil {
		return unavailable[*risk.DomainAnalysis]()
	}
	if !found {
		return available[*risk.DomainAnalysis](nil)
	}
	return available(normalizeDomainReport(domain, body))
}

func normalizeDomainReport(domain string, body vtDomainResponse) *risk.DomainAnalysis {
	attrs := body.Data.Attributes
	return &risk.DomainAnalysis{
		Domain:               domain,
		Reputation:           parseReputation(attrs.Reputation),
		Categories:           attrs.Categories,
		LastAnalysisDate:     unixTime(attrs.LastAnalysisDate),
		Stats:                attrs.LastAnalysisStats,
		Registrar:            attrs.Registrar,
		CreationDate:         unixTime(attrs.CreationDate),
		LastModificationDate: unixTime(attrs.LastModificationDate),
	}
}

// parseReputation accepts any JSON number and truncates it. Anything else,
// including a numeric string, is treated as absent.
func parseReputation(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	rep := int(f)
	return &rep
}

func unixTime(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}

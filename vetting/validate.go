package vetting

import (
	"regexp"
	"strings"
)

var (
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.[a-zA-Z]{2,}$`)
	ipv4Pattern   = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizeDomain lower-cases the input and strips the scheme, a leading
// "www." and a trailing slash.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.ToLower(domain)

	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")

	domain = strings.TrimSuffix(domain, "/")

	return domain
}

// IsValidDomainOrIP accepts a second-level name with a letters-only TLD, or a
// dotted quad. Octet ranges are not checked; multi-label names such as
// mail.example.com are rejected.
func IsValidDomainOrIP(s string) bool {
	return domainPattern.MatchString(s) || ipv4Pattern.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

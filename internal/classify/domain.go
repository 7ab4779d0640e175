package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// DomainClassifier decides whether a URL's host is blocked, trusted, or
// matches a document-repository pattern
type DomainClassifier struct {
	blocked       []string
	trusted       []string
	repoPatterns  []*regexp.Regexp
	userDocURL    []*regexp.Regexp
	userDocTitle  []*regexp.Regexp
}

// NewDomainClassifier compiles the rule set into a classifier. Patterns
// that fail to compile are skipped.
func NewDomainClassifier(rules *model.RuleSet) *DomainClassifier {
	c := &DomainClassifier{
		blocked: rules.BlockedDomains,
		trusted: rules.TrustedMarkers,
	}

	for _, p := range rules.RepositoryPatterns {
		if re, err := regexp.Compile(p); err == nil {
			c.repoPatterns = append(c.repoPatterns, re)
		}
	}
	for _, p := range rules.UserDocURLPatterns {
		if re, err := regexp.Compile(p); err == nil {
			c.userDocURL = append(c.userDocURL, re)
		}
	}
	for _, p := range rules.UserDocTitlePatterns {
		if re, err := regexp.Compile(p); err == nil {
			c.userDocTitle = append(c.userDocTitle, re)
		}
	}

	return c
}

// Domain extracts the lowercase host from a URL, empty on parse failure
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// IsPDF reports whether a URL points at a PDF document
func IsPDF(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), ".pdf")
}

// IsBlocked checks the host against the blocked-domain list. Containment,
// not exact match, so subdomains of a blocked apex are also blocked.
func (c *DomainClassifier) IsBlocked(rawURL string) (bool, string) {
	domain := Domain(rawURL)
	if domain == "" {
		return false, ""
	}
	for _, blocked := range c.blocked {
		if strings.Contains(domain, blocked) {
			return true, blocked
		}
	}
	return false, ""
}

// IsTrusted checks both the host and the full URL for trusted markers.
// Some markers (e.g. "civicweb") appear in path segments, not hosts.
func (c *DomainClassifier) IsTrusted(rawURL string) bool {
	domain := Domain(rawURL)
	lower := strings.ToLower(rawURL)
	for _, marker := range c.trusted {
		if strings.Contains(domain, marker) || strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasRepositoryPattern reports whether the URL matches any configured
// document-repository path pattern
func (c *DomainClassifier) HasRepositoryPattern(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, re := range c.repoPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsUserDocumentation reports whether the candidate looks like an end-user
// manual, guide, or FAQ rather than a procurement record
func (c *DomainClassifier) IsUserDocumentation(rawURL, title string) bool {
	urlLower := strings.ToLower(rawURL)
	titleLower := strings.ToLower(title)

	for _, re := range c.userDocURL {
		if re.MatchString(urlLower) {
			return true
		}
	}
	for _, re := range c.userDocTitle {
		if re.MatchString(titleLower) {
			return true
		}
	}
	return false
}

package classify

import (
	"regexp"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// DocTypeClassifier maps (URL, title) text to a document type from the
// priority-ordered taxonomy. Evaluation is first-match-wins; exclusion
// patterns veto a type even when its inclusion patterns would match, so
// an "agreement" inside a staff-report title classifies as a staff report.
type DocTypeClassifier struct {
	rules    []compiledTypeRule
	fallback model.DocumentTypeRule
}

type compiledTypeRule struct {
	rule    model.DocumentTypeRule
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewDocTypeClassifier compiles the taxonomy. The rule with no inclusion
// patterns is the terminal fallback and is excluded from iteration.
func NewDocTypeClassifier(types []model.DocumentTypeRule) *DocTypeClassifier {
	c := &DocTypeClassifier{}

	for _, t := range types {
		if len(t.Patterns) == 0 {
			c.fallback = t
			continue
		}

		compiled := compiledTypeRule{rule: t}
		for _, p := range t.Patterns {
			if re, err := regexp.Compile(p); err == nil {
				compiled.include = append(compiled.include, re)
			}
		}
		for _, p := range t.ExcludePatterns {
			if re, err := regexp.Compile(p); err == nil {
				compiled.exclude = append(compiled.exclude, re)
			}
		}
		c.rules = append(c.rules, compiled)
	}

	if c.fallback.Name == "" {
		c.fallback = model.DocumentTypeRule{
			Name:        "Other Government Document",
			Priority:    len(types) + 1,
			Description: "Unknown - needs review",
		}
	}

	return c
}

// Classify returns the first matching type for the case-folded URL+title
// blob, or the fallback. The classifier is total: it always returns a type.
func (c *DocTypeClassifier) Classify(rawURL, title string) (string, model.DocumentTypeRule) {
	blob := strings.ToLower(rawURL + " " + title)

	for _, compiled := range c.rules {
		if matchesAny(compiled.exclude, blob) {
			continue
		}
		if matchesAny(compiled.include, blob) {
			return compiled.rule.Name, compiled.rule
		}
	}

	return c.fallback.Name, c.fallback
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

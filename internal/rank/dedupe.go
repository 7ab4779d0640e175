package rank

import (
	"sort"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// NormalizeURL canonicalizes a URL for deduplication: lowercase, fragment
// stripped, trailing slash stripped, and only document-identifying query
// parameters retained (tracking and session parameters dropped).
func NormalizeURL(rawURL string) string {
	normalized := strings.ToLower(rawURL)

	if idx := strings.Index(normalized, "#"); idx >= 0 {
		normalized = normalized[:idx]
	}
	normalized = strings.TrimRight(normalized, "/")

	if idx := strings.Index(normalized, "?"); idx >= 0 {
		base, query := normalized[:idx], normalized[idx+1:]
		var keep []string
		for _, param := range strings.Split(query, "&") {
			if strings.Contains(param, "id=") || strings.Contains(param, "doc=") || strings.Contains(param, "file=") {
				keep = append(keep, param)
			}
		}
		normalized = base
		if len(keep) > 0 {
			normalized += "?" + strings.Join(keep, "&")
		}
	}

	return normalized
}

// Deduplicate merges candidates sharing a normalized URL, keeping the
// higher-scoring variant. Equal scores break ties toward the
// lexicographically earlier title, so the result is deterministic.
// Output preserves first-seen order; idempotent on its own output.
func Deduplicate(candidates []model.Candidate) []model.Candidate {
	index := make(map[string]int)
	var unique []model.Candidate

	for _, c := range candidates {
		norm := NormalizeURL(c.URL)
		at, seen := index[norm]
		if !seen {
			index[norm] = len(unique)
			unique = append(unique, c)
			continue
		}

		existing := unique[at]
		if c.RelevanceScore > existing.RelevanceScore ||
			(c.RelevanceScore == existing.RelevanceScore && c.Title < existing.Title) {
			unique[at] = c
		}
	}

	return unique
}

// SortByScore sorts candidates by descending relevance score, stable so
// equal-scored candidates keep their relative order
func SortByScore(candidates []model.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})
}

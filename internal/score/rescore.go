package score

import (
	"fmt"
	"math"

	"github.com/govsift/govsift/internal/model"
)

// Rescorer adjusts relevance scores using content-analysis findings.
// Candidates without a successful analysis are left untouched.
type Rescorer struct {
	company string
	product string
}

// NewRescorer creates a rescorer for the given target entities
func NewRescorer(company, product string) *Rescorer {
	return &Rescorer{company: company, product: product}
}

// Apply adjusts every analyzed candidate in place and records the net
// delta. Adjustments, in order: pricing found +2.0; product mentioned
// +1.5 else -2.0; company mentioned +1.0 else -1.5; term found +0.5.
// The result is floored at 0. Callers re-sort afterward.
func (r *Rescorer) Apply(candidates []model.Candidate) {
	for i := range candidates {
		c := &candidates[i]

		if c.Content == nil || c.Content.Status != model.StatusAnalyzed || c.Content.Analysis == nil {
			continue
		}
		analysis := c.Content.Analysis
		original := c.RelevanceScore

		if len(analysis.Prices) > 0 {
			c.RelevanceScore += 2.0
			c.AddReason("+2.0 pricing found")
		}

		if analysis.HasProduct {
			c.RelevanceScore += 1.5
			c.AddReason(fmt.Sprintf("+1.5 %s mentioned", r.product))
		} else {
			c.RelevanceScore -= 2.0
			c.AddReason(fmt.Sprintf("-2.0 %s NOT mentioned", r.product))
		}

		if analysis.HasCompany {
			c.RelevanceScore += 1.0
			c.AddReason(fmt.Sprintf("+1.0 %s mentioned", r.company))
		} else {
			c.RelevanceScore -= 1.5
			c.AddReason(fmt.Sprintf("-1.5 %s NOT mentioned", r.company))
		}

		if analysis.Term != "" {
			c.RelevanceScore += 0.5
			c.AddReason("+0.5 term found")
		}

		c.RelevanceScore = math.Max(c.RelevanceScore, 0)
		c.ContentScoreDelta = c.RelevanceScore - original
	}
}

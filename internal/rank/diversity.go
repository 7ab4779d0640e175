package rank

import (
	"fmt"
	"math"

	"github.com/govsift/govsift/internal/model"
)

// LocationExtractor infers a place name from a candidate's URL and title
type LocationExtractor interface {
	Extract(rawURL, title string) string
}

// DiversityRanker penalizes repeated occurrences of the same inferred
// location so a single jurisdiction does not dominate the top of the list
type DiversityRanker struct {
	locations   LocationExtractor
	penaltyStep float64
	maxPenalty  float64
}

// NewDiversityRanker creates a ranker with the configured penalty curve
func NewDiversityRanker(locations LocationExtractor, cfg model.DiversityConfig) *DiversityRanker {
	return &DiversityRanker{
		locations:   locations,
		penaltyStep: cfg.PenaltyStep,
		maxPenalty:  cfg.MaxPenalty,
	}
}

// Apply walks the already-sorted candidate list in score order, annotating
// each candidate's location and penalizing repeats. The first occurrence
// of a location is free; occurrence N (0-based) costs min(N*step, max).
// "Unknown" locations are never penalized. The per-location counter is
// local to this call, so concurrent ranking runs do not interfere.
// Single pass: penalized candidates are not re-evaluated against new
// neighbors. The caller re-sorts afterward.
func (d *DiversityRanker) Apply(candidates []model.Candidate) {
	counts := make(map[string]int)

	for i := range candidates {
		c := &candidates[i]
		location := d.locations.Extract(c.URL, c.Title)
		c.Location = location

		if location == "Unknown" {
			continue
		}

		count := counts[location]
		if count > 0 {
			penalty := math.Min(float64(count)*d.penaltyStep, d.maxPenalty)
			c.RelevanceScore = math.Max(c.RelevanceScore-penalty, 0)
			c.AddReason(fmt.Sprintf("-%.1f location #%d", penalty, count+1))
			c.DiversityPenalty = penalty
		}
		counts[location] = count + 1
	}
}

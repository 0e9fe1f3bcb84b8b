package planner

import (
	"strings"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// Complexity thresholds: signal counts of 0-1 map to low, 2-4 to medium,
// and 5 or more to high.
const (
	mediumComplexityMin = 2
	highComplexityMin   = 5
)

// Classify analyzes a free-text objective and returns its task category,
// complexity tier, and detected platform entities.
//
// Classification is deterministic and never fails: an empty or unmatched
// objective degrades to the generic category with low complexity. Category
// matchers run in a fixed priority order and the first match wins, so an
// objective matching several categories always resolves the same way.
func Classify(objective string) models.Classification {
	lower := strings.ToLower(objective)

	return models.Classification{
		TaskType:   matchTaskType(lower),
		Complexity: scoreComplexity(lower),
		Entities:   DetectEntities(objective),
	}
}

// matchTaskType runs the ordered category matchers over the lowercased
// objective. The first keyword hit decides the category.
func matchTaskType(lower string) models.TaskType {
	for _, m := range categoryMatchers {
		for _, kw := range m.Keywords {
			if strings.Contains(lower, kw) {
				return m.TaskType
			}
		}
	}
	return models.TaskGeneric
}

// scoreComplexity counts distinct entity-keyword hits and multi-step
// connective phrases, then maps the total onto the complexity tiers.
// The score is independent of the task category.
func scoreComplexity(lower string) models.Complexity {
	score := len(entityHits(lower)) + connectiveHits(lower)

	switch {
	case score >= highComplexityMin:
		return models.ComplexityHigh
	case score >= mediumComplexityMin:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

// entityHits returns the set of canonical entity names whose keywords
// appear in the lowercased objective.
func entityHits(lower string) map[string]bool {
	hits := make(map[string]bool)
	for kw, canonical := range entityKeywords {
		if strings.Contains(lower, kw) {
			hits[canonical] = true
		}
	}
	return hits
}

// connectiveHits counts distinct multi-step connective phrases in the
// lowercased objective.
func connectiveHits(lower string) int {
	n := 0
	for _, phrase := range multiStepConnectives {
		if strings.Contains(lower, phrase) {
			n++
		}
	}
	return n
}

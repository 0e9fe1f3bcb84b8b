package planner

import (
	"regexp"
	"sort"
	"strings"
)

// Patterns for entity extraction. Custom tables on the platform carry a
// u_ (instance-local) or x_ (scoped app) prefix; objectives may also name
// a table explicitly with a "table: X" phrase.
var (
	customTablePattern   = regexp.MustCompile(`\b[ux]_[a-z0-9_]+\b`)
	explicitTablePattern = regexp.MustCompile(`\btable:?\s+([a-zA-Z][a-zA-Z0-9_]*)`)
)

// DetectEntities extracts platform-domain nouns from an objective.
//
// Three sources contribute: the entity keyword list, custom-table and
// explicit "table: X" pattern matches, and the fixed seed set. Hits are
// deduplicated case-insensitively and returned in sorted order, so running
// detection twice on the same string yields the same result.
func DetectEntities(objective string) []string {
	lower := strings.ToLower(objective)

	set := make(map[string]bool)
	for canonical := range entityHits(lower) {
		set[canonical] = true
	}
	for _, m := range customTablePattern.FindAllString(lower, -1) {
		set[m] = true
	}
	for _, m := range explicitTablePattern.FindAllStringSubmatch(lower, -1) {
		set[strings.ToLower(m[1])] = true
	}
	for _, seed := range seedEntities {
		set[seed] = true
	}

	entities := make([]string, 0, len(set))
	for e := range set {
		entities = append(entities, e)
	}
	sort.Strings(entities)
	return entities
}

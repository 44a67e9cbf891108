package diagnosis

import (
	"context"
	"sort"
	"strings"
)

// Default metadata attached to catalogue matches whose entry carries none.
const (
	defaultMatchCost = "$100-300"
)

// Matcher scores catalogue entries against query keywords using exact
// token-set intersection.
type Matcher struct {
	repo CatalogRepository
}

// NewMatcher builds a catalogue matcher on top of the given repository.
func NewMatcher(repo CatalogRepository) *Matcher {
	return &Matcher{repo: repo}
}

// Search returns every catalogue entry sharing at least one keyword with the
// query, filtered by optional case-insensitive brand/model equality, sorted
// by descending match score. Ties keep catalogue order. An empty slice means
// "no rule match" and is not an error.
func (m *Matcher) Search(ctx context.Context, query, brand, model string) ([]Result, error) {
	entries, err := m.repo.Entries(ctx)
	if err != nil {
		return nil, err
	}

	queryKeywords := keywordSet(ExtractKeywords(query))

	results := make([]Result, 0)
	for _, entry := range entries {
		if brand != "" && !strings.EqualFold(brand, entry.Brand) {
			continue
		}
		if model != "" && !strings.EqualFold(model, entry.Model) {
			continue
		}

		score := 0
		for _, kw := range entry.Keywords {
			if _, ok := queryKeywords[strings.ToLower(strings.TrimSpace(kw))]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}

		severity := entry.Severity
		if severity == "" {
			severity = SeverityWarning
		}
		cost := entry.EstimatedCost
		if cost == "" {
			cost = defaultMatchCost
		}

		results = append(results, Result{
			Problem:       entry.Problem,
			Severity:      severity,
			Solution:      entry.Solution,
			EstimatedCost: cost,
			DIYPossible:   entry.DIYPossible,
			TimeEstimate:  entry.TimeEstimate,
			MatchScore:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results, nil
}

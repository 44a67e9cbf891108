package diagnosis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	entries []CatalogEntry
	err     error
}

func (s *stubCatalog) Entries(context.Context) ([]CatalogEntry, error) {
	return s.entries, s.err
}

func testCatalog() *stubCatalog {
	return &stubCatalog{entries: []CatalogEntry{
		{
			Brand:    "Toyota",
			Model:    "Corolla",
			Problem:  "Car not starting",
			Solution: "Check battery connections and charge.",
			Keywords: []string{"start", "starting", "battery", "dead", "crank", "ignition"},
			Severity: SeverityWarning,
		},
		{
			Brand:         "Fiat",
			Model:         "500",
			Problem:       "Grinding noise when braking",
			Solution:      "Replace brake pads.",
			Keywords:      []string{"brakes", "brake", "grinding", "noise", "stopping"},
			Severity:      SeverityCritical,
			EstimatedCost: "$150-$450",
		},
		{
			Brand:    "Toyota",
			Model:    "Camry",
			Problem:  "Engine overheating",
			Solution: "Check coolant level.",
			Keywords: []string{"hot", "overheat", "temperature", "cooling", "radiator", "steam"},
		},
	}}
}

func TestMatcherScoresByKeywordIntersection(t *testing.T) {
	matcher := NewMatcher(testCatalog())

	results, err := matcher.Search(context.Background(), "battery dead and engine not starting", "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Car not starting", results[0].Problem)
	require.Equal(t, 3, results[0].MatchScore)
}

func TestMatcherOrdersByScoreDescending(t *testing.T) {
	matcher := NewMatcher(testCatalog())

	results, err := matcher.Search(context.Background(), "grinding noise and some steam", "", "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Grinding noise when braking", results[0].Problem)
	require.Equal(t, 2, results[0].MatchScore)
	require.Equal(t, "Engine overheating", results[1].Problem)
	require.Equal(t, 1, results[1].MatchScore)
}

func TestMatcherFiltersByBrandAndModel(t *testing.T) {
	matcher := NewMatcher(testCatalog())

	results, err := matcher.Search(context.Background(), "battery dead not starting", "fiat", "")
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = matcher.Search(context.Background(), "battery dead not starting", "TOYOTA", "corolla")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestMatcherAppliesDefaults(t *testing.T) {
	matcher := NewMatcher(testCatalog())

	results, err := matcher.Search(context.Background(), "radiator steam", "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, SeverityWarning, results[0].Severity)
	require.Equal(t, defaultMatchCost, results[0].EstimatedCost)
}

func TestMatcherPropagatesRepositoryError(t *testing.T) {
	matcher := NewMatcher(&stubCatalog{err: errors.New("db down")})

	_, err := matcher.Search(context.Background(), "anything here", "", "")
	require.Error(t, err)
}

func TestMatcherNoOverlapYieldsEmpty(t *testing.T) {
	matcher := NewMatcher(testCatalog())

	results, err := matcher.Search(context.Background(), "windshield wiper replacement", "", "")
	require.NoError(t, err)
	require.Empty(t, results)
}

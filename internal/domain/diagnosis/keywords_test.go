package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsDropsShortTokens(t *testing.T) {
	got := ExtractKeywords("My car is overheating on the highway")
	require.Equal(t, []string{"car", "overheating", "the", "highway"}, got)
}

func TestExtractKeywordsLowercases(t *testing.T) {
	got := ExtractKeywords("ENGINE Overheating")
	require.Equal(t, []string{"engine", "overheating"}, got)
}

func TestExtractKeywordsFallsBackToFullSplit(t *testing.T) {
	got := ExtractKeywords("ac on")
	require.Equal(t, []string{"ac", "on"}, got)
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	require.Empty(t, ExtractKeywords("   "))
}

func TestDetectLanguage(t *testing.T) {
	require.Equal(t, "en", DetectLanguage("car not starting"))
	require.Equal(t, "ar", DetectLanguage("السيارة لا تعمل"))
	require.Equal(t, "ar", DetectLanguage("engine صوت"))
}

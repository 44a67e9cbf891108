package unit

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	"github.com/popslsls21/CServices/internal/infra/catalogrepo"
	"github.com/popslsls21/CServices/internal/infra/diagstore"
	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

const aiPayload = `{
	"results": [
		{"problem": "Failing alternator", "problem_severity": "Warning", "solution": "Test alternator output.", "estimated_cost": "$200-$500", "diy_possible": false}
	],
	"follow_up_questions": ["How old is the battery?", "Do the lights dim at idle?", "Any clicking when starting?"],
	"maintenance_tips": ["Clean battery terminals periodically"]
}`

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) GenerateContent(context.Context, string, string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type recoveringProvider struct {
	failures int
	response string
	calls    int
}

func (p *recoveringProvider) GenerateContent(context.Context, string, string) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "down", nil)
	}
	return p.response, nil
}

func newDiagnosisService(t *testing.T, provider diagnosis.ProviderClient) diagnosis.Service {
	t.Helper()
	repo, err := catalogrepo.NewMemoryRepository("")
	require.NoError(t, err)
	logger := newTestLogger()
	adapter := diagnosis.NewAdapter(provider, []string{"model-a"}, logger)
	cfg := diagnosis.Config{CacheTTL: time.Minute, TopTrending: 10}
	return diagnosis.NewService(cfg, diagnosis.NewMatcher(repo), adapter, diagstore.NewMemoryStore(), rand.New(rand.NewSource(1)), logger)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiagnoseRejectsEmptyQuery(t *testing.T) {
	svc := newDiagnosisService(t, &stubProvider{response: aiPayload})

	_, err := svc.Diagnose(context.Background(), diagnosis.Request{Query: "   "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestDiagnoseVagueQueryShortCircuits(t *testing.T) {
	provider := &stubProvider{response: aiPayload}
	svc := newDiagnosisService(t, provider)

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{Query: "car not starting"})
	require.NoError(t, err)
	require.Empty(t, report.Results)
	require.Contains(t, report.Message, "more details")
	require.Contains(t, report.FollowUpQuestion, "battery")
	require.Zero(t, provider.calls)
}

func TestDiagnoseVagueArabicQuery(t *testing.T) {
	svc := newDiagnosisService(t, &stubProvider{response: aiPayload})

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{Query: "صوت غريب"})
	require.NoError(t, err)
	require.NotEmpty(t, report.FollowUpQuestion)
	require.Empty(t, report.Results)
}

func TestDiagnoseLongVaguePhraseIsNotShortCircuited(t *testing.T) {
	provider := &stubProvider{response: aiPayload}
	svc := newDiagnosisService(t, provider)

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "my car not starting after it rained all night yesterday",
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.Results)
	require.Equal(t, 1, provider.calls)
}

func TestDiagnoseUsesAIAndEnriches(t *testing.T) {
	svc := newDiagnosisService(t, &stubProvider{response: aiPayload})

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "battery light on while driving home",
		Brand: "Toyota",
	})
	require.NoError(t, err)
	require.Equal(t, "ai", report.Source)
	require.Equal(t, "Failing alternator", report.Results[0].Problem)
	require.NotEmpty(t, report.RelatedIssues)
	require.NotEmpty(t, report.MaintenanceTips)
}

func TestDiagnoseServesSecondCallFromCache(t *testing.T) {
	provider := &stubProvider{response: aiPayload}
	svc := newDiagnosisService(t, provider)

	req := diagnosis.Request{Query: "battery light on while driving home"}
	first, err := svc.Diagnose(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Diagnose(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.Results, second.Results)
	require.Equal(t, 1, provider.calls)
}

func TestDiagnoseQuotaFallsBackToCatalogue(t *testing.T) {
	provider := &stubProvider{err: apperrors.Wrap(apperrors.CodeQuotaExceeded, "quota exhausted", nil)}
	svc := newDiagnosisService(t, provider)

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "lots of steam from the radiator area",
	})
	require.NoError(t, err)
	require.Equal(t, "catalog", report.Source)
	require.Equal(t, "Engine overheating", report.Results[0].Problem)
	require.Len(t, report.FollowUpQuestions, 3)
}

func TestDiagnoseRetriesAIWithoutFilters(t *testing.T) {
	provider := &recoveringProvider{failures: 1, response: aiPayload}
	svc := newDiagnosisService(t, provider)

	// No BMW catalogue entries exist, so after the first provider failure the
	// service asks the provider again without the brand/model context.
	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "lots of steam from the radiator area",
		Brand: "BMW",
		Model: "X5",
	})
	require.NoError(t, err)
	require.Equal(t, 2, provider.calls)
	require.Equal(t, "ai", report.Source)
	require.Equal(t, "Failing alternator", report.Results[0].Problem)
}

func TestDiagnoseFallsBackToPatternMatcher(t *testing.T) {
	provider := &stubProvider{err: apperrors.Wrap(apperrors.CodeProviderError, "down", nil)}
	svc := newDiagnosisService(t, provider)

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "making a loud grinding noise when braking downhill",
		Brand: "BMW",
		Model: "3 Series",
	})
	require.NoError(t, err)
	require.Equal(t, "rules", report.Source)
	require.Contains(t, report.ProblemTypes, "brakes")
	require.Equal(t, "Critically Worn Brake Pads", report.Results[0].Problem)
	require.Equal(t, diagnosis.SeverityCritical, report.Results[0].Severity)
}

func TestDiagnoseNoResultsIsTerminalNotError(t *testing.T) {
	provider := &stubProvider{err: apperrors.Wrap(apperrors.CodeProviderError, "down", nil)}
	svc := newDiagnosisService(t, provider)

	report, err := svc.Diagnose(context.Background(), diagnosis.Request{
		Query: "the cup holder rattles on gravel roads",
	})
	require.NoError(t, err)
	require.Empty(t, report.Results)
	require.Contains(t, report.Message, "No diagnostic information found")
	require.Len(t, report.FollowUpQuestions, 3)
	require.NotEmpty(t, report.MaintenanceTips)
}

func TestTrendingCountsQueries(t *testing.T) {
	svc := newDiagnosisService(t, &stubProvider{response: aiPayload})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Diagnose(ctx, diagnosis.Request{Query: "battery light on while driving home"})
		require.NoError(t, err)
	}
	_, err := svc.Diagnose(ctx, diagnosis.Request{Query: "steam coming from the radiator cap"})
	require.NoError(t, err)

	trending, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, trending)
	require.Equal(t, "battery light on while driving home", trending[0].Query)
	require.Equal(t, int64(3), trending[0].Count)
}

func TestGenerateDiagnosticFallsBackToRules(t *testing.T) {
	provider := &stubProvider{err: apperrors.Wrap(apperrors.CodeProviderError, "down", nil)}
	svc := newDiagnosisService(t, provider)

	report := svc.GenerateDiagnostic(context.Background(), "engine overheating and coolant loss", "Toyota", "Camry")
	require.Equal(t, "rules", report.Source)
	require.NotEmpty(t, report.Results)
	require.Equal(t, "Engine Overheating", report.Results[0].Problem)
}

func TestGenerateDiagnosticPrefersAI(t *testing.T) {
	svc := newDiagnosisService(t, &stubProvider{response: aiPayload})

	report := svc.GenerateDiagnostic(context.Background(), "battery drains overnight", "", "")
	require.Equal(t, "ai", report.Source)
	require.Equal(t, "Failing alternator", report.Results[0].Problem)
}

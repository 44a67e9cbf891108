package diagnosis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

type stubProvider struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (s *stubProvider) GenerateContent(_ context.Context, model, _ string) (string, error) {
	s.calls = append(s.calls, model)
	if err, ok := s.errs[model]; ok {
		return "", err
	}
	return s.responses[model], nil
}

func newTestAdapter(provider ProviderClient, models ...string) *Adapter {
	return NewAdapter(provider, models, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const validPayload = `{
	"results": [
		{"problem": "Failing alternator", "problem_severity": "Warning", "solution": "Test alternator output.", "estimated_cost": "$200-$500", "diy_possible": false}
	],
	"follow_up_questions": ["How old is the battery?"],
	"maintenance_tips": ["Clean battery terminals periodically"]
}`

func TestAdapterParsesStrictJSON(t *testing.T) {
	provider := &stubProvider{responses: map[string]string{"model-a": validPayload}}
	adapter := newTestAdapter(provider, "model-a")

	report, err := adapter.Generate(context.Background(), "battery light on", "Toyota", "Corolla", false)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.Equal(t, "Failing alternator", report.Results[0].Problem)
	require.Equal(t, SeverityWarning, report.Results[0].Severity)
	require.Equal(t, "ai", report.Source)
}

func TestAdapterStripsMarkdownFences(t *testing.T) {
	provider := &stubProvider{responses: map[string]string{
		"model-a": "```json\n" + validPayload + "\n```",
	}}
	adapter := newTestAdapter(provider, "model-a")

	report, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
}

func TestAdapterFallsThroughModels(t *testing.T) {
	provider := &stubProvider{
		errs:      map[string]error{"model-a": apperrors.Wrap(apperrors.CodeQuotaExceeded, "quota", nil)},
		responses: map[string]string{"model-b": validPayload},
	}
	adapter := newTestAdapter(provider, "model-a", "model-b")

	report, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.NoError(t, err)
	require.Equal(t, []string{"model-a", "model-b"}, provider.calls)
	require.Len(t, report.Results, 1)
}

func TestAdapterAbortsOnInvalidCredentials(t *testing.T) {
	provider := &stubProvider{
		errs: map[string]error{"model-a": apperrors.Wrap(apperrors.CodeInvalidCredentials, "bad key", nil)},
	}
	adapter := newTestAdapter(provider, "model-a", "model-b")

	_, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
	require.Equal(t, []string{"model-a"}, provider.calls)
}

func TestAdapterReturnsLastErrorWhenAllModelsFail(t *testing.T) {
	provider := &stubProvider{
		errs: map[string]error{
			"model-a": apperrors.Wrap(apperrors.CodeProviderError, "down", nil),
			"model-b": apperrors.Wrap(apperrors.CodeQuotaExceeded, "quota", nil),
		},
	}
	adapter := newTestAdapter(provider, "model-a", "model-b")

	_, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeQuotaExceeded))
}

func TestAdapterRejectsUnparseableOutput(t *testing.T) {
	provider := &stubProvider{responses: map[string]string{"model-a": "Sorry, I cannot help with that."}}
	adapter := newTestAdapter(provider, "model-a")

	_, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeProviderError))
}

func TestAdapterBackfillsMissingLists(t *testing.T) {
	provider := &stubProvider{responses: map[string]string{
		"model-a": `{"results": [{"problem": "Worn pads", "solution": "Replace pads.", "estimated_cost": "$150", "diy_possible": true}]}`,
	}}
	adapter := newTestAdapter(provider, "model-a")

	report, err := adapter.Generate(context.Background(), "brakes squeal", "", "", false)
	require.NoError(t, err)
	require.Equal(t, SeverityUnknown, report.Results[0].Severity)
	require.NotNil(t, report.FollowUpQuestions)
	require.Empty(t, report.FollowUpQuestions)
	require.NotNil(t, report.MaintenanceTips)
	require.Empty(t, report.MaintenanceTips)
}

func TestAdapterNilClient(t *testing.T) {
	adapter := newTestAdapter(nil, "model-a")

	_, err := adapter.Generate(context.Background(), "battery light on", "", "", false)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeProviderError))
}

func TestBuildPromptDemandsStrictJSON(t *testing.T) {
	prompt := buildPrompt("engine stalls at idle", "Fiat", "500", true)
	require.Contains(t, prompt, "Fiat 500")
	require.Contains(t, prompt, "engine stalls at idle")
	require.Contains(t, prompt, "Return ONLY valid JSON")
	require.Contains(t, prompt, "thorough diagnosis")
}

package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

// ProviderClient is the outbound surface of a generative text provider.
type ProviderClient interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Adapter drives a provider through an ordered model list and parses the
// strict-JSON diagnostic payload the prompt demands.
type Adapter struct {
	client ProviderClient
	models []string
	logger *slog.Logger
}

// NewAdapter wires a provider client to the model fallback list.
func NewAdapter(client ProviderClient, models []string, logger *slog.Logger) *Adapter {
	return &Adapter{
		client: client,
		models: models,
		logger: logger.With("component", "diagnosis_adapter"),
	}
}

// Generate asks the provider for a diagnosis, walking the model list until one
// answers with parseable JSON. Invalid credentials abort immediately since no
// other model would fare better. Quota and transient provider errors move on
// to the next model; if every model fails the last error is returned.
func (a *Adapter) Generate(ctx context.Context, query, brand, model string, detailed bool) (Report, error) {
	if a.client == nil {
		return Report{}, apperrors.Wrap(apperrors.CodeProviderError, "no provider configured", nil)
	}

	prompt := buildPrompt(query, brand, model, detailed)

	var lastErr error
	for _, name := range a.models {
		raw, err := a.client.GenerateContent(ctx, name, prompt)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeInvalidCredentials) {
				return Report{}, err
			}
			a.logger.Warn("model attempt failed", "model", name, "error", err)
			lastErr = err
			continue
		}

		report, err := parseReport(raw)
		if err != nil {
			a.logger.Warn("unparseable model output", "model", name, "error", err)
			lastErr = err
			continue
		}
		report.Source = "ai"
		return report, nil
	}

	if lastErr == nil {
		lastErr = apperrors.Wrap(apperrors.CodeProviderError, "no models configured", nil)
	}
	return Report{}, lastErr
}

func buildPrompt(query, brand, model string, detailed bool) string {
	var b strings.Builder
	b.WriteString("You are an expert automotive diagnostic assistant.\n")
	fmt.Fprintf(&b, "Vehicle: %s %s\n", brand, model)
	fmt.Fprintf(&b, "Reported issue: %s\n\n", query)
	if detailed {
		b.WriteString("Provide a thorough diagnosis covering likely causes in order of probability, with step-by-step checks an owner can perform.\n")
	} else {
		b.WriteString("Provide a concise diagnosis of the most likely causes.\n")
	}
	b.WriteString(`Respond with a JSON object of this exact shape:
{
  "results": [
    {
      "problem": "short problem title",
      "problem_severity": "Critical|Warning|Minor",
      "solution": "explanation and recommended fix",
      "estimated_cost": "cost range in USD",
      "diy_possible": true
    }
  ],
  "follow_up_questions": ["question 1", "question 2", "question 3"],
  "maintenance_tips": ["tip 1", "tip 2", "tip 3"]
}
Return ONLY valid JSON with no additional text, explanation, or markdown formatting.`)
	return b.String()
}

// parseReport decodes the provider payload, tolerating markdown code fences
// around the JSON. Missing list fields become empty sequences rather than
// nil so the report shape is always complete; content-level enrichment is
// the orchestrator's job.
func parseReport(raw string) (Report, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeProviderError, "empty provider response", nil)
	}

	var report Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return Report{}, apperrors.Wrap(apperrors.CodeProviderError, "decode provider response", err)
	}

	if report.Results == nil {
		report.Results = []Result{}
	}
	for i := range report.Results {
		if report.Results[i].Severity == "" {
			report.Results[i].Severity = SeverityUnknown
		}
	}
	if report.FollowUpQuestions == nil {
		report.FollowUpQuestions = []string{}
	}
	if report.MaintenanceTips == nil {
		report.MaintenanceTips = []string{}
	}
	return report, nil
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

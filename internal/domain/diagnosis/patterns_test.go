package diagnosis

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPatternService(seed int64) *service {
	return &service{
		sampler: newSampler(rand.New(rand.NewSource(seed))),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRuleBasedMatchesEngineSubSignals(t *testing.T) {
	svc := newPatternService(1)

	report := svc.GenerateRuleBased("engine keeps overheating and coolant smells burnt", "Toyota", "Camry")

	require.Equal(t, []string{"engine"}, report.ProblemTypes)
	require.Len(t, report.Results, 1)
	require.Equal(t, "Engine Overheating", report.Results[0].Problem)
	require.Equal(t, SeverityCritical, report.Results[0].Severity)
	require.Equal(t, "rules", report.Source)
}

func TestRuleBasedMultipleCategories(t *testing.T) {
	svc := newPatternService(2)

	report := svc.GenerateRuleBased("low oil pressure and the battery won't charge", "", "")

	require.Contains(t, report.ProblemTypes, "engine")
	require.Contains(t, report.ProblemTypes, "battery")

	problems := make([]string, 0, len(report.Results))
	for _, result := range report.Results {
		problems = append(problems, result.Problem)
	}
	require.Contains(t, problems, "Low Engine Oil Pressure")
	require.Contains(t, problems, "Low Battery Voltage")
}

func TestRuleBasedAlwaysThreeQuestionsAndCappedTips(t *testing.T) {
	svc := newPatternService(3)

	for _, description := range []string{
		"transmission slipping between gears",
		"brakes grinding when stopping",
		"tire keeps going flat",
		"something feels off",
	} {
		report := svc.GenerateRuleBased(description, "", "")
		require.Len(t, report.FollowUpQuestions, 3, "description %q", description)
		require.LessOrEqual(t, len(report.MaintenanceTips), 5, "description %q", description)
		require.NotEmpty(t, report.MaintenanceTips)
	}
}

func TestRuleBasedCategoryTipComesFirst(t *testing.T) {
	svc := newPatternService(4)

	report := svc.GenerateRuleBased("brake pedal grinding", "", "")
	require.Equal(t, "Inspect brake pads and rotors every 10,000 miles", report.MaintenanceTips[0])
}

func TestRuleBasedGeneralFallback(t *testing.T) {
	svc := newPatternService(5)

	report := svc.GenerateRuleBased("something feels wrong lately", "Audi", "A4")

	require.Equal(t, []string{"general"}, report.ProblemTypes)
	require.Len(t, report.Results, 1)
	require.Equal(t, "General Vehicle Issue", report.Results[0].Problem)
	require.Equal(t, SeverityUnknown, report.Results[0].Severity)
	require.Contains(t, report.Results[0].Solution, "Audi A4")
	require.Equal(t, "Varies", report.Results[0].EstimatedCost)
	require.False(t, report.Results[0].DIYPossible)
}

func TestRuleBasedFuelSensorSelection(t *testing.T) {
	svc := newPatternService(6)

	report := svc.GenerateRuleBased("oxygen sensor misfire warning", "", "")

	require.Contains(t, report.ProblemTypes, "fuel")
	problems := make([]string, 0, len(report.Results))
	for _, result := range report.Results {
		problems = append(problems, result.Problem)
	}
	require.Contains(t, problems, "Faulty Oxygen Sensor")
	require.NotContains(t, problems, "Low Fuel Pressure")
}

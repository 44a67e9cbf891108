// Package analysis assembles the complete vehicle health picture: synthetic
// telemetry, anomaly detection, component scoring, usage insights and an AI
// diagnosis of whatever the detector flagged.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	"github.com/popslsls21/CServices/internal/domain/health"
	"github.com/popslsls21/CServices/internal/domain/telemetry"
)

// Service runs full vehicle analyses.
type Service interface {
	Analyze(ctx context.Context, req Request) (VehicleAnalysis, error)
}

type service struct {
	synthesizer *telemetry.Synthesizer
	diagnoser   diagnosis.Service
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewService wires up the analysis pipeline.
func NewService(synthesizer *telemetry.Synthesizer, diagnoser diagnosis.Service, logger *slog.Logger) Service {
	return &service{
		synthesizer: synthesizer,
		diagnoser:   diagnoser,
		logger:      logger.With("component", "analysis.service"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Analyze synthesizes a snapshot, scores it and attaches an AI diagnosis of
// the detected anomalies. The diagnosis step is best effort: the report
// always comes back populated even when every provider is down.
func (s *service) Analyze(ctx context.Context, req Request) (VehicleAnalysis, error) {
	condition := telemetry.Condition(req.Condition)
	if req.Condition == "" {
		condition = s.synthesizer.RandomCondition()
	}

	snapshot := s.synthesizer.Snapshot(req.VehicleID, condition)
	anomalies := telemetry.Detect(snapshot)
	scores := health.Score(anomalies)

	var diag diagnosis.Report
	if len(anomalies) == 0 {
		diag = healthyReport()
	} else {
		diag = s.diagnoser.GenerateDiagnostic(ctx, describeAnomalies(anomalies), req.Brand, req.Model)
	}

	s.logger.Info("vehicle analyzed",
		"vehicle_id", req.VehicleID,
		"condition", condition,
		"anomalies", len(anomalies),
		"overall_score", scores.OverallScore,
	)

	return VehicleAnalysis{
		AnalysisID: s.newID(),
		VehicleData: VehicleData{
			VehicleID: req.VehicleID,
			Brand:     req.Brand,
			Model:     req.Model,
			Year:      req.Year,
			Snapshot:  snapshot,
		},
		HealthScores:    scores,
		Anomalies:       anomalies,
		PatternInsights: s.patternInsights(),
		AIDiagnostics:   diag,
	}, nil
}

// describeAnomalies renders the anomaly list into the sentence form the
// diagnosis prompt expects.
func describeAnomalies(anomalies []telemetry.Anomaly) string {
	var b strings.Builder
	for _, anomaly := range anomalies {
		fmt.Fprintf(&b, "%s: %g %s (Expected: %s). ",
			sensorTitle(anomaly.Sensor), anomaly.CurrentValue, anomaly.Unit, anomaly.ExpectedRange)
	}
	return strings.TrimSpace(b.String())
}

func sensorTitle(sensor telemetry.Sensor) string {
	words := strings.Split(string(sensor), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// patternInsights derives qualitative usage observations. The driving
// pattern wording keys off the local hour so early snapshots read as commute
// traffic.
func (s *service) patternInsights() []Insight {
	driving := "Mixed driving pattern detected throughout the day"
	if s.now().Hour() < 10 {
		driving = "Frequent short trips detected in the morning hours"
	}
	return []Insight{
		{
			Type:           "driving_pattern",
			Description:    driving,
			Recommendation: "Consider combining short trips to reduce engine wear",
		},
		{
			Type:           "maintenance_pattern",
			Description:    "Regular maintenance intervals observed",
			Recommendation: "Continue following the recommended maintenance schedule",
		},
		{
			Type:           "seasonal_pattern",
			Description:    "Seasonal temperature changes may affect tire pressure",
			Recommendation: "Check tire pressure as temperatures change",
		},
	}
}

// healthyReport is served when the detector finds nothing to diagnose.
func healthyReport() diagnosis.Report {
	return diagnosis.Report{
		Results: []diagnosis.Result{
			{
				Problem:       "No Issues Detected",
				Severity:      diagnosis.SeverityMinor,
				Solution:      "All sensor readings are within normal ranges. Continue with regular maintenance to keep the vehicle in good condition.",
				EstimatedCost: "$0",
				DIYPossible:   true,
			},
		},
		FollowUpQuestions: []string{
			"When was your last scheduled maintenance?",
			"Have you noticed any changes in vehicle performance?",
		},
		MaintenanceTips: []string{
			"Regular oil changes every 5,000-7,500 miles",
			"Rotate tires every 6,000-8,000 miles",
			"Check fluid levels monthly",
			"Keep tires properly inflated",
		},
	}
}

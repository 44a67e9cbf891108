package analysis

import (
	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	"github.com/popslsls21/CServices/internal/domain/health"
	"github.com/popslsls21/CServices/internal/domain/telemetry"
)

// Request identifies the vehicle to analyze. Condition optionally forces the
// synthesizer onto a specific profile; empty means pick one at random.
type Request struct {
	VehicleID string `json:"vehicle_id"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Condition string `json:"condition"`
}

// VehicleData bundles the identifying fields with the snapshot they were
// scored from.
type VehicleData struct {
	VehicleID string             `json:"vehicle_id"`
	Brand     string             `json:"brand,omitempty"`
	Model     string             `json:"model,omitempty"`
	Year      int                `json:"year,omitempty"`
	Snapshot  telemetry.Snapshot `json:"snapshot"`
}

// Insight is a qualitative observation derived from usage patterns.
type Insight struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// VehicleAnalysis is the complete output of one analysis pass.
type VehicleAnalysis struct {
	AnalysisID      string              `json:"analysis_id"`
	VehicleData     VehicleData         `json:"vehicle_data"`
	HealthScores    health.Report       `json:"health_scores"`
	Anomalies       []telemetry.Anomaly `json:"anomalies"`
	PatternInsights []Insight           `json:"pattern_insights"`
	AIDiagnostics   diagnosis.Report    `json:"ai_diagnostics"`
}

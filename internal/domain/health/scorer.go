// Package health turns detected anomalies into 0-100 scores for the seven
// vehicle subsystems and an overall score.
package health

import (
	"math"

	"github.com/popslsls21/CServices/internal/domain/telemetry"
)

// Component names a scored vehicle subsystem.
type Component string

const (
	ComponentEngine        Component = "engine"
	ComponentBattery       Component = "battery"
	ComponentBrakes        Component = "brakes"
	ComponentTransmission  Component = "transmission"
	ComponentTires         Component = "tires"
	ComponentFuelSystem    Component = "fuel_system"
	ComponentCoolingSystem Component = "cooling_system"
)

// components fixes iteration order for deterministic reports.
var components = []Component{
	ComponentEngine,
	ComponentBattery,
	ComponentBrakes,
	ComponentTransmission,
	ComponentTires,
	ComponentFuelSystem,
	ComponentCoolingSystem,
}

// sensorComponents maps each sensor onto the subsystem it scores against.
// Several sensors share a component.
var sensorComponents = map[telemetry.Sensor]Component{
	telemetry.SensorOilPressure:       ComponentEngine,
	telemetry.SensorEngineRPM:         ComponentEngine,
	telemetry.SensorBatteryVoltage:    ComponentBattery,
	telemetry.SensorBrakePadThickness: ComponentBrakes,
	telemetry.SensorTransmissionTemp:  ComponentTransmission,
	telemetry.SensorTirePressure:      ComponentTires,
	telemetry.SensorFuelPressure:      ComponentFuelSystem,
	telemetry.SensorOxygenSensor:      ComponentFuelSystem,
	telemetry.SensorCoolantTemp:       ComponentCoolingSystem,
}

const (
	criticalPenalty = 30
	warningPenalty  = 15
)

// Report carries the aggregate and per-component results of a scoring pass.
type Report struct {
	OverallScore      float64               `json:"overall_score"`
	OverallStatus     string                `json:"overall_status"`
	ComponentScores   map[Component]float64 `json:"component_scores"`
	ComponentStatuses map[Component]string  `json:"component_statuses"`
}

// Score starts every component at 100, subtracts a fixed penalty per anomaly
// from the mapped component, clamps at zero and averages the components into
// the overall score. Zero anomalies yields a perfect report.
func Score(anomalies []telemetry.Anomaly) Report {
	scores := make(map[Component]float64, len(components))
	for _, component := range components {
		scores[component] = 100
	}

	for _, anomaly := range anomalies {
		component, ok := sensorComponents[anomaly.Sensor]
		if !ok {
			continue
		}
		penalty := float64(warningPenalty)
		if anomaly.Severity == telemetry.SeverityCritical {
			penalty = criticalPenalty
		}
		scores[component] -= penalty
	}

	statuses := make(map[Component]string, len(components))
	total := 0.0
	for _, component := range components {
		if scores[component] < 0 {
			scores[component] = 0
		}
		statuses[component] = StatusFor(scores[component])
		total += scores[component]
	}

	overall := math.Round(total/float64(len(components))*10) / 10
	return Report{
		OverallScore:      overall,
		OverallStatus:     StatusFor(overall),
		ComponentScores:   scores,
		ComponentStatuses: statuses,
	}
}

// StatusFor converts a numeric score into its label.
func StatusFor(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 30:
		return "Poor"
	default:
		return "Critical"
	}
}

package health_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/popslsls21/CServices/internal/domain/health"
	"github.com/popslsls21/CServices/internal/domain/telemetry"
)

func TestScorePerfectWithoutAnomalies(t *testing.T) {
	report := health.Score(nil)

	require.Equal(t, 100.0, report.OverallScore)
	require.Equal(t, "Excellent", report.OverallStatus)
	require.Len(t, report.ComponentScores, 7)
	for component, score := range report.ComponentScores {
		require.Equal(t, 100.0, score)
		require.Equal(t, "Excellent", report.ComponentStatuses[component])
	}
}

func TestScorePenalizesMappedComponent(t *testing.T) {
	report := health.Score([]telemetry.Anomaly{
		{Sensor: telemetry.SensorOilPressure, Severity: telemetry.SeverityCritical},
		{Sensor: telemetry.SensorBatteryVoltage, Severity: telemetry.SeverityWarning},
	})

	require.Equal(t, 70.0, report.ComponentScores[health.ComponentEngine])
	require.Equal(t, "Good", report.ComponentStatuses[health.ComponentEngine])
	require.Equal(t, 85.0, report.ComponentScores[health.ComponentBattery])
	require.Equal(t, 100.0, report.ComponentScores[health.ComponentBrakes])

	// (70 + 85 + 100*5) / 7 = 93.571... rounded to one decimal
	require.Equal(t, 93.6, report.OverallScore)
	require.Equal(t, "Excellent", report.OverallStatus)
}

func TestScoreSharedComponentAccumulates(t *testing.T) {
	report := health.Score([]telemetry.Anomaly{
		{Sensor: telemetry.SensorFuelPressure, Severity: telemetry.SeverityWarning},
		{Sensor: telemetry.SensorOxygenSensor, Severity: telemetry.SeverityWarning},
	})

	require.Equal(t, 70.0, report.ComponentScores[health.ComponentFuelSystem])
}

func TestScoreClampsAtZero(t *testing.T) {
	anomalies := make([]telemetry.Anomaly, 0, 4)
	for i := 0; i < 4; i++ {
		anomalies = append(anomalies, telemetry.Anomaly{
			Sensor:   telemetry.SensorCoolantTemp,
			Severity: telemetry.SeverityCritical,
		})
	}
	report := health.Score(anomalies)

	require.Equal(t, 0.0, report.ComponentScores[health.ComponentCoolingSystem])
	require.Equal(t, "Critical", report.ComponentStatuses[health.ComponentCoolingSystem])
}

func TestScoreIgnoresUnmappedSensor(t *testing.T) {
	report := health.Score([]telemetry.Anomaly{
		{Sensor: telemetry.SensorFuelLevel, Severity: telemetry.SeverityCritical},
	})
	require.Equal(t, 100.0, report.OverallScore)
}

func TestStatusBands(t *testing.T) {
	require.Equal(t, "Excellent", health.StatusFor(90))
	require.Equal(t, "Good", health.StatusFor(89.9))
	require.Equal(t, "Good", health.StatusFor(70))
	require.Equal(t, "Fair", health.StatusFor(69.9))
	require.Equal(t, "Fair", health.StatusFor(50))
	require.Equal(t, "Poor", health.StatusFor(49.9))
	require.Equal(t, "Poor", health.StatusFor(30))
	require.Equal(t, "Critical", health.StatusFor(29.9))
}

package telemetry

import "fmt"

// Detect compares snapshot readings against the static thresholds and
// returns anomalies in reading order. A reading is anomalous only when it is
// strictly outside [min, max]; boundary values pass.
func Detect(snapshot Snapshot) []Anomaly {
	anomalies := make([]Anomaly, 0)
	for _, reading := range snapshot.Readings {
		threshold, ok := Thresholds[reading.Sensor]
		if !ok {
			continue
		}
		if reading.Value >= threshold.Min && reading.Value <= threshold.Max {
			continue
		}

		violated := boundLow
		if reading.Value > threshold.Max {
			violated = boundHigh
		}

		severity := SeverityWarning
		if reading.Value < threshold.Min*0.8 || reading.Value > threshold.Max*1.2 {
			severity = SeverityCritical
		}

		anomalies = append(anomalies, Anomaly{
			Sensor:         reading.Sensor,
			CurrentValue:   reading.Value,
			Unit:           threshold.Unit,
			ExpectedRange:  fmt.Sprintf("%g - %g %s", threshold.Min, threshold.Max, threshold.Unit),
			Severity:       severity,
			Recommendation: recommendationFor(reading.Sensor, violated),
			Timestamp:      snapshot.Timestamp,
		})
	}
	return anomalies
}

func recommendationFor(sensor Sensor, violated bound) string {
	if byBound, ok := recommendations[sensor]; ok {
		if text, ok := byBound[violated]; ok {
			return text
		}
	}
	return fmt.Sprintf("Abnormal %s reading. Schedule inspection with a qualified technician.", sensor)
}

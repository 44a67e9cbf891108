package telemetry

import "time"

// Sensor enumerates every monitored channel. Keeping this a closed set lets
// threshold, profile and recommendation lookups stay static tables instead of
// string dispatch.
type Sensor string

const (
	SensorOilPressure       Sensor = "oil_pressure"
	SensorCoolantTemp       Sensor = "coolant_temp"
	SensorBatteryVoltage    Sensor = "battery_voltage"
	SensorFuelPressure      Sensor = "fuel_pressure"
	SensorEngineRPM         Sensor = "engine_rpm"
	SensorTirePressure      Sensor = "tire_pressure"
	SensorBrakePadThickness Sensor = "brake_pad_thickness"
	SensorTransmissionTemp  Sensor = "transmission_temp"
	SensorFuelLevel         Sensor = "fuel_level"
	SensorOxygenSensor      Sensor = "oxygen_sensor"
)

// Condition names a simulated vehicle state. Every condition other than
// "normal" is a partial overlay on top of the normal baseline.
type Condition string

const (
	ConditionNormal       Condition = "normal"
	ConditionOilIssue     Condition = "oil_issue"
	ConditionBatteryIssue Condition = "battery_issue"
	ConditionCoolingIssue Condition = "cooling_issue"
	ConditionBrakeIssue   Condition = "brake_issue"
	ConditionTireIssue    Condition = "tire_issue"
	ConditionFuelIssue    Condition = "fuel_issue"
	ConditionTransIssue   Condition = "transmission_issue"
)

// Reading is a single generated sensor sample.
type Reading struct {
	Sensor Sensor  `json:"sensor"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

// Snapshot is the full set of readings produced by one synthesis call.
// Readings keep a fixed sensor order so downstream anomaly output is stable.
type Snapshot struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Timestamp time.Time `json:"timestamp"`
	Readings  []Reading `json:"readings"`
}

// Threshold is the static safe range for one sensor.
type Threshold struct {
	Min  float64
	Max  float64
	Unit string
}

// AnomalySeverity classifies how far outside the safe range a reading is.
type AnomalySeverity string

const (
	SeverityWarning  AnomalySeverity = "warning"
	SeverityCritical AnomalySeverity = "critical"
)

// Anomaly is a reading outside its configured threshold, with a derived
// severity and a hand-authored recommendation.
type Anomaly struct {
	Sensor         Sensor          `json:"sensor"`
	CurrentValue   float64         `json:"current_value"`
	Unit           string          `json:"unit"`
	ExpectedRange  string          `json:"expected_range"`
	Severity       AnomalySeverity `json:"severity"`
	Recommendation string          `json:"recommendation"`
	Timestamp      time.Time       `json:"timestamp"`
}

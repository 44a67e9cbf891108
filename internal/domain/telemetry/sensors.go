package telemetry

// sensorOrder fixes the order readings appear in a snapshot and, by
// extension, the order anomalies are reported in.
var sensorOrder = []Sensor{
	SensorOilPressure,
	SensorCoolantTemp,
	SensorBatteryVoltage,
	SensorFuelPressure,
	SensorEngineRPM,
	SensorTirePressure,
	SensorBrakePadThickness,
	SensorTransmissionTemp,
	SensorFuelLevel,
	SensorOxygenSensor,
}

// Thresholds holds the static safe range per sensor.
var Thresholds = map[Sensor]Threshold{
	SensorOilPressure:       {Min: 10, Max: 80, Unit: "psi"},
	SensorCoolantTemp:       {Min: 75, Max: 105, Unit: "°C"},
	SensorBatteryVoltage:    {Min: 11.5, Max: 14.5, Unit: "V"},
	SensorFuelPressure:      {Min: 35, Max: 65, Unit: "psi"},
	SensorEngineRPM:         {Min: 600, Max: 7000, Unit: "RPM"},
	SensorTirePressure:      {Min: 28, Max: 36, Unit: "psi"},
	SensorBrakePadThickness: {Min: 3, Max: 12, Unit: "mm"},
	SensorTransmissionTemp:  {Min: 70, Max: 95, Unit: "°C"},
	SensorFuelLevel:         {Min: 10, Max: 100, Unit: "%"},
	SensorOxygenSensor:      {Min: 0.1, Max: 0.9, Unit: "V"},
}

type profileParams struct {
	Base     float64
	Variance float64
}

// conditionProfiles layers per-sensor overrides on top of the normal
// baseline. The normal profile is complete; every other profile only lists
// the sensors the simulated fault disturbs.
var conditionProfiles = map[Condition]map[Sensor]profileParams{
	ConditionNormal: {
		SensorOilPressure:       {Base: 45, Variance: 5},
		SensorCoolantTemp:       {Base: 88, Variance: 5},
		SensorBatteryVoltage:    {Base: 13.8, Variance: 0.3},
		SensorFuelPressure:      {Base: 50, Variance: 5},
		SensorEngineRPM:         {Base: 800, Variance: 100},
		SensorTirePressure:      {Base: 32, Variance: 1},
		SensorBrakePadThickness: {Base: 8, Variance: 1},
		SensorTransmissionTemp:  {Base: 80, Variance: 5},
		SensorFuelLevel:         {Base: 65, Variance: 15},
		SensorOxygenSensor:      {Base: 0.5, Variance: 0.2},
	},
	ConditionOilIssue: {
		SensorOilPressure: {Base: 15, Variance: 5},
		SensorCoolantTemp: {Base: 90, Variance: 5},
		SensorEngineRPM:   {Base: 850, Variance: 150},
	},
	ConditionBatteryIssue: {
		SensorBatteryVoltage: {Base: 10.8, Variance: 0.5},
		SensorEngineRPM:      {Base: 750, Variance: 200},
	},
	ConditionCoolingIssue: {
		SensorCoolantTemp: {Base: 110, Variance: 8},
		SensorEngineRPM:   {Base: 850, Variance: 100},
	},
	ConditionBrakeIssue: {
		SensorBrakePadThickness: {Base: 2.5, Variance: 0.5},
	},
	ConditionTireIssue: {
		SensorTirePressure: {Base: 24, Variance: 3},
	},
	ConditionFuelIssue: {
		SensorFuelPressure: {Base: 30, Variance: 5},
		SensorEngineRPM:    {Base: 780, Variance: 150},
		SensorOxygenSensor: {Base: 0.3, Variance: 0.1},
	},
	ConditionTransIssue: {
		SensorTransmissionTemp: {Base: 105, Variance: 8},
		SensorEngineRPM:        {Base: 850, Variance: 200},
	},
}

// issueConditions lists every non-normal profile, in a fixed order so the
// weighted random selection is reproducible under a seeded source.
var issueConditions = []Condition{
	ConditionOilIssue,
	ConditionBatteryIssue,
	ConditionCoolingIssue,
	ConditionBrakeIssue,
	ConditionTireIssue,
	ConditionFuelIssue,
	ConditionTransIssue,
}

type bound int

const (
	boundLow bound = iota
	boundHigh
)

// recommendations maps sensor plus violated bound to advisory text. Sensors
// or bounds without an entry fall back to a generic inspection notice.
var recommendations = map[Sensor]map[bound]string{
	SensorOilPressure: {
		boundLow:  "Check oil level and refill if necessary. If problem persists, inspect for oil leaks or engine damage.",
		boundHigh: "High oil pressure detected. Check oil viscosity and possible blockage in the oil system.",
	},
	SensorCoolantTemp: {
		boundHigh: "Engine overheating. Check coolant level, radiator function, and water pump. Stop driving if temperature continues to rise.",
		boundLow:  "Engine temperature too low. Check thermostat function.",
	},
	SensorBatteryVoltage: {
		boundLow:  "Low battery voltage. Check charging system, alternator, and battery condition.",
		boundHigh: "High battery voltage. Check voltage regulator and charging system.",
	},
	SensorTirePressure: {
		boundLow:  "Low tire pressure. Inflate tires to recommended PSI and check for leaks.",
		boundHigh: "High tire pressure. Reduce to manufacturer recommended PSI.",
	},
	SensorBrakePadThickness: {
		boundLow: "Brake pads critically worn. Replace immediately for safety.",
	},
	SensorFuelPressure: {
		boundLow:  "Low fuel pressure. Check fuel pump, filter, and pressure regulator.",
		boundHigh: "High fuel pressure. Inspect pressure regulator and fuel system.",
	},
	SensorTransmissionTemp: {
		boundHigh: "Transmission overheating. Check fluid level and condition. Avoid towing or heavy loads until resolved.",
	},
	SensorOxygenSensor: {
		boundLow:  "Oxygen sensor readings out of range. Check for exhaust leaks, fuel mixture issues, or sensor failure.",
		boundHigh: "Oxygen sensor readings out of range. Check for exhaust leaks, fuel mixture issues, or sensor failure.",
	},
}

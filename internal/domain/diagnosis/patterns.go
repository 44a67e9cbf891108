package diagnosis

import (
	"fmt"
	"strings"
)

// problemCategory buckets free-text descriptions for the pattern matcher.
type problemCategory string

const (
	categoryEngine       problemCategory = "engine"
	categoryBattery      problemCategory = "battery"
	categoryTransmission problemCategory = "transmission"
	categoryBrakes       problemCategory = "brakes"
	categoryTires        problemCategory = "tires"
	categoryFuel         problemCategory = "fuel"
)

// patternCategories is checked in order; a description can land in several
// categories at once. Matching here is substring containment, unlike the
// catalogue matcher's token-set intersection.
var patternCategories = []struct {
	category problemCategory
	keywords []string
}{
	{categoryEngine, []string{"oil", "pressure", "engine", "overheat", "temperature", "coolant", "rpm", "idle"}},
	{categoryBattery, []string{"battery", "volt", "electrical", "start", "charge"}},
	{categoryTransmission, []string{"transmission", "gear", "shift"}},
	{categoryBrakes, []string{"brake", "stop", "pedal"}},
	{categoryTires, []string{"tire", "wheel", "pressure", "flat"}},
	{categoryFuel, []string{"fuel", "gas", "injection", "misfire", "oxygen"}},
}

var cannedDiagnostics = map[problemCategory]map[string]Result{
	categoryEngine: {
		"oil_pressure": {
			Problem:       "Low Engine Oil Pressure",
			Severity:      SeverityCritical,
			Solution:      "Your engine is experiencing dangerously low oil pressure which can cause severe engine damage if not addressed immediately. Check your oil level and refill if necessary. If the problem persists, visit a mechanic as soon as possible to inspect for oil leaks, worn oil pump, or damaged engine bearings.",
			EstimatedCost: "$150-$1,500",
			DIYPossible:   false,
		},
		"coolant_temp": {
			Problem:       "Engine Overheating",
			Severity:      SeverityCritical,
			Solution:      "Your engine is overheating, which can lead to severe engine damage. Check coolant levels and inspect for leaks. Ensure the radiator fan is working properly. If these initial checks don't resolve the issue, have your cooling system professionally inspected.",
			EstimatedCost: "$100-$1,200",
			DIYPossible:   false,
		},
		"rpm": {
			Problem:       "Irregular Engine RPM",
			Severity:      SeverityWarning,
			Solution:      "Your engine is showing irregular RPM patterns, which could indicate issues with the fuel delivery system, spark plugs, or idle control valve. A diagnostic scan is recommended to pinpoint the exact cause.",
			EstimatedCost: "$80-$350",
			DIYPossible:   true,
		},
	},
	categoryBattery: {
		"voltage": {
			Problem:       "Low Battery Voltage",
			Severity:      SeverityWarning,
			Solution:      "Your battery is showing lower than normal voltage. This could indicate a failing battery or issues with the charging system. Check battery terminals for corrosion and test the alternator output.",
			EstimatedCost: "$150-$400",
			DIYPossible:   true,
		},
	},
	categoryTransmission: {
		"temp": {
			Problem:       "Transmission Overheating",
			Severity:      SeverityCritical,
			Solution:      "Your transmission is operating at dangerously high temperatures. This can lead to premature transmission failure. Check transmission fluid levels and condition. Avoid towing or heavy loads until resolved.",
			EstimatedCost: "$200-$2,500",
			DIYPossible:   false,
		},
	},
	categoryBrakes: {
		"pad_thickness": {
			Problem:       "Critically Worn Brake Pads",
			Severity:      SeverityCritical,
			Solution:      "Your brake pads are critically worn and need immediate replacement. Continuing to drive with worn brake pads can damage the rotors and compromise braking performance.",
			EstimatedCost: "$150-$400",
			DIYPossible:   true,
		},
	},
	categoryTires: {
		"pressure": {
			Problem:       "Low Tire Pressure",
			Severity:      SeverityWarning,
			Solution:      "One or more of your tires is operating below the recommended pressure. This affects fuel efficiency, handling, and tire lifespan. Inflate to the manufacturer's recommended PSI.",
			EstimatedCost: "$0-$5",
			DIYPossible:   true,
		},
	},
	categoryFuel: {
		"pressure": {
			Problem:       "Low Fuel Pressure",
			Severity:      SeverityWarning,
			Solution:      "Your fuel system is operating below the optimal pressure range. This can lead to poor engine performance, misfires, and reduced power. Check the fuel pump, filter, and pressure regulator.",
			EstimatedCost: "$100-$800",
			DIYPossible:   false,
		},
		"oxygen_sensor": {
			Problem:       "Faulty Oxygen Sensor",
			Severity:      SeverityWarning,
			Solution:      "Your oxygen sensor readings indicate it may be failing. This affects fuel efficiency and emissions. A diagnostic scan can confirm which sensor needs replacement.",
			EstimatedCost: "$150-$500",
			DIYPossible:   true,
		},
	},
}

var followUpQuestions = map[problemCategory][]string{
	categoryEngine: {
		"When was your last oil change?",
		"Have you noticed any unusual engine noises?",
		"Has the check engine light come on recently?",
		"Have you noticed any fluid leaks under your vehicle?",
	},
	categoryBattery: {
		"How old is your current battery?",
		"Do you have difficulty starting the vehicle?",
		"Have you noticed dimming headlights or other electrical issues?",
	},
	categoryTransmission: {
		"Have you noticed any hesitation or jerking during gear shifts?",
		"When was the transmission fluid last changed?",
		"Do you often tow heavy loads with your vehicle?",
	},
	categoryBrakes: {
		"Have you heard any squealing or grinding from the brakes?",
		"Do you feel any vibration when braking?",
		"Does the vehicle pull to one side when braking?",
	},
	categoryTires: {
		"When was the last time you rotated your tires?",
		"Have you noticed uneven tire wear?",
		"Have you recently hit any potholes or curbs?",
	},
	categoryFuel: {
		"Have you noticed decreased fuel efficiency?",
		"Does the engine hesitate during acceleration?",
		"What grade of fuel do you typically use?",
	},
}

var genericQuestions = []string{
	"When did you first notice this issue?",
	"Does the issue occur under specific conditions?",
	"Has a mechanic examined this before?",
}

var maintenanceTipPool = []string{
	"Regular oil changes every 5,000-7,500 miles",
	"Rotate tires every 6,000-8,000 miles",
	"Replace air filter annually",
	"Check fluid levels monthly",
	"Keep tires properly inflated",
	"Clean battery terminals periodically",
	"Replace wiper blades twice a year",
	"Follow your vehicle's maintenance schedule",
	"Address warning lights promptly",
	"Use the recommended grade of fuel and oil",
}

var categoryTips = map[problemCategory]string{
	categoryEngine:       "Check oil level and condition regularly",
	categoryTransmission: "Have transmission fluid changed every 30,000-60,000 miles",
	categoryBrakes:       "Inspect brake pads and rotors every 10,000 miles",
	categoryTires:        "Check tire pressure monthly and before long trips",
}

// GenerateRuleBased classifies a free-text description into problem
// categories via substring keywords and assembles canned results, exactly
// three follow-up questions and up to five maintenance tips. A description
// matching no category yields a single general-issue result.
func (s *service) GenerateRuleBased(description, brand, model string) Report {
	desc := strings.ToLower(description)

	results := make([]Result, 0, 4)
	problemTypes := make([]string, 0, 4)

	for _, entry := range patternCategories {
		if !containsAny(desc, entry.keywords) {
			continue
		}
		problemTypes = append(problemTypes, string(entry.category))

		switch entry.category {
		case categoryEngine:
			if strings.Contains(desc, "oil") || strings.Contains(desc, "pressure") {
				results = append(results, cannedDiagnostics[categoryEngine]["oil_pressure"])
			}
			if strings.Contains(desc, "overheat") || strings.Contains(desc, "temperature") || strings.Contains(desc, "coolant") {
				results = append(results, cannedDiagnostics[categoryEngine]["coolant_temp"])
			}
			if strings.Contains(desc, "rpm") || strings.Contains(desc, "idle") {
				results = append(results, cannedDiagnostics[categoryEngine]["rpm"])
			}
		case categoryBattery:
			results = append(results, cannedDiagnostics[categoryBattery]["voltage"])
		case categoryTransmission:
			results = append(results, cannedDiagnostics[categoryTransmission]["temp"])
		case categoryBrakes:
			results = append(results, cannedDiagnostics[categoryBrakes]["pad_thickness"])
		case categoryTires:
			results = append(results, cannedDiagnostics[categoryTires]["pressure"])
		case categoryFuel:
			if strings.Contains(desc, "pressure") {
				results = append(results, cannedDiagnostics[categoryFuel]["pressure"])
			}
			if strings.Contains(desc, "oxygen") || strings.Contains(desc, "sensor") {
				results = append(results, cannedDiagnostics[categoryFuel]["oxygen_sensor"])
			}
		}
	}

	if len(results) == 0 {
		results = append(results, Result{
			Problem:       "General Vehicle Issue",
			Severity:      SeverityUnknown,
			Solution:      fmt.Sprintf("Based on the description provided for your %s %s, we recommend a comprehensive diagnostic scan. The information provided isn't specific enough to pinpoint the exact issue. Consider visiting a certified technician for proper diagnosis.", brand, model),
			EstimatedCost: "Varies",
			DIYPossible:   false,
		})
		problemTypes = []string{"general"}
	}

	questions := make([]string, 0, 3)
	for _, pt := range problemTypes {
		if pool, ok := followUpQuestions[problemCategory(pt)]; ok {
			questions = append(questions, s.sampler.sample(pool, 2)...)
		}
	}
	if len(questions) < 3 {
		questions = append(questions, s.sampler.sample(genericQuestions, 3-len(questions))...)
	}
	if len(questions) > 3 {
		questions = questions[:3]
	}

	tips := s.sampler.sample(maintenanceTipPool, 5)
	for _, pt := range problemTypes {
		if tip, ok := categoryTips[problemCategory(pt)]; ok {
			tips = append([]string{tip}, tips...)
		}
	}
	if len(tips) > 5 {
		tips = tips[:5]
	}

	return Report{
		Results:           results,
		FollowUpQuestions: questions,
		MaintenanceTips:   tips,
		ProblemTypes:      problemTypes,
		Source:            "rules",
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

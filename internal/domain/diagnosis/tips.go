package diagnosis

import "strings"

var brandTips = map[string][]string{
	"mercedes": {
		"Follow the Mercedes-Benz A/B service schedule strictly",
		"Use only approved MB-spec oil and fluids",
		"Have the COMAND and electronics checked during routine service",
	},
	"bmw": {
		"Monitor coolant levels closely, BMW cooling systems are sensitive",
		"Use BMW-approved synthetic oil",
		"Check VANOS system operation during regular maintenance",
	},
	"audi": {
		"Watch for oil consumption on TFSI engines",
		"Keep the DSG transmission serviced at recommended intervals",
		"Inspect the timing chain tensioner periodically",
	},
	"toyota": {
		"Follow the standard maintenance schedule for long engine life",
		"Check hybrid battery health annually on hybrid models",
		"Inspect CVT fluid condition at recommended intervals",
	},
	"fiat": {
		"Check the MultiAir actuator on equipped engines",
		"Inspect clutch wear earlier than average on manual models",
		"Keep an eye on electrical connectors for corrosion",
	},
}

// vehicleSystem groups related issues commonly reported together.
type vehicleSystem string

const (
	systemEngine     vehicleSystem = "engine"
	systemElectrical vehicleSystem = "electrical"
	systemBrakes     vehicleSystem = "brakes"
	systemSuspension vehicleSystem = "suspension"
	systemFuel       vehicleSystem = "fuel"
	systemCooling    vehicleSystem = "cooling"
)

var systemKeywords = []struct {
	system   vehicleSystem
	keywords []string
}{
	{systemEngine, []string{"engine", "oil", "rpm", "idle", "misfire", "knock"}},
	{systemElectrical, []string{"battery", "volt", "electrical", "light", "start", "charge"}},
	{systemBrakes, []string{"brake", "stop", "pedal", "grinding"}},
	{systemSuspension, []string{"suspension", "shock", "strut", "bounce", "steering"}},
	{systemFuel, []string{"fuel", "gas", "injection", "pump"}},
	{systemCooling, []string{"overheat", "coolant", "radiator", "temperature", "fan"}},
}

var relatedIssuesBySystem = map[vehicleSystem][]RelatedIssue{
	systemEngine: {
		{Issue: "Worn spark plugs", Description: "Can cause misfires, rough idle, and reduced fuel economy"},
		{Issue: "Dirty fuel injectors", Description: "Lead to uneven fuel delivery and hesitation under load"},
		{Issue: "Vacuum leaks", Description: "Produce high idle, stalling, and lean running conditions"},
	},
	systemElectrical: {
		{Issue: "Corroded battery terminals", Description: "Interrupt charging and cause intermittent starting problems"},
		{Issue: "Failing alternator", Description: "Results in dimming lights and eventual battery drain"},
		{Issue: "Worn starter motor", Description: "Causes clicking sounds and slow or failed engine cranking"},
	},
	systemBrakes: {
		{Issue: "Warped brake rotors", Description: "Cause vibration through the pedal during braking"},
		{Issue: "Low brake fluid", Description: "Leads to a soft pedal and reduced stopping power"},
		{Issue: "Sticking brake calipers", Description: "Cause uneven pad wear and pulling to one side"},
	},
	systemSuspension: {
		{Issue: "Worn shock absorbers", Description: "Cause excessive bouncing and poor handling"},
		{Issue: "Damaged control arm bushings", Description: "Produce clunking noises over bumps"},
		{Issue: "Misaligned wheels", Description: "Cause uneven tire wear and steering drift"},
	},
	systemFuel: {
		{Issue: "Clogged fuel filter", Description: "Restricts flow and causes power loss at high demand"},
		{Issue: "Weak fuel pump", Description: "Produces hard starts and stalling under acceleration"},
		{Issue: "Faulty fuel pressure regulator", Description: "Causes rich or lean running and poor economy"},
	},
	systemCooling: {
		{Issue: "Stuck thermostat", Description: "Prevents coolant circulation and causes rapid overheating"},
		{Issue: "Leaking water pump", Description: "Drops coolant level and leads to engine overheating"},
		{Issue: "Blocked radiator", Description: "Reduces heat dissipation especially at low speeds"},
	},
}

// maintenanceTips returns up to three generic tips plus at most two
// brand-specific ones when the brand is recognized.
func (s *service) maintenanceTips(brand string) []string {
	tips := s.sampler.sample(maintenanceTipPool, 3)
	if extra, ok := brandTips[strings.ToLower(strings.TrimSpace(brand))]; ok {
		tips = append(tips, s.sampler.sample(extra, 2)...)
	}
	return tips
}

// relatedIssues picks up to two issues from the system the diagnosed problem
// text points at. Text matching no system yields none.
func (s *service) relatedIssues(problemText string) []RelatedIssue {
	text := strings.ToLower(problemText)
	for _, entry := range systemKeywords {
		if containsAny(text, entry.keywords) {
			return s.sampler.sampleRelated(relatedIssuesBySystem[entry.system], 2)
		}
	}
	return nil
}

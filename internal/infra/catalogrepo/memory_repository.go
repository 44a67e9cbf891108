// Package catalogrepo provides the fault catalogue backends. The memory
// repository ships with a built-in seed so the service answers rule-based
// searches out of the box; postgres serves curated production catalogues.
package catalogrepo

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
)

// seedCatalog is the built-in fault catalogue.
var seedCatalog = []diagnosis.CatalogEntry{
	{
		Brand:         "Toyota",
		Model:         "Corolla",
		Problem:       "Car not starting",
		Solution:      "Check battery connections and charge. If the battery is fine, the starter motor may need replacement. Also verify the ignition switch is functioning properly.",
		Keywords:      []string{"start", "starting", "battery", "dead", "crank", "ignition", "won't start"},
		Severity:      diagnosis.SeverityWarning,
		EstimatedCost: "$100-$500",
		DIYPossible:   true,
		TimeEstimate:  "1-3 hours",
	},
	{
		Brand:         "Toyota",
		Model:         "Camry",
		Problem:       "Engine overheating",
		Solution:      "Check coolant level and top up if low. Inspect the radiator for leaks and make sure the cooling fan operates. If the problem persists, the thermostat or water pump may need replacement.",
		Keywords:      []string{"hot", "overheat", "temperature", "cooling", "radiator", "steam"},
		Severity:      diagnosis.SeverityCritical,
		EstimatedCost: "$150-$1,000",
		DIYPossible:   false,
		TimeEstimate:  "2-5 hours",
	},
	{
		Brand:         "Mercedes",
		Model:         "C-Class",
		Problem:       "Warning lights on dashboard",
		Solution:      "Run an OBD-II diagnostic scan to read the stored fault codes and address what they point at. Common causes include a loose gas cap, a failing oxygen sensor, or emissions system issues.",
		Keywords:      []string{"warning", "light", "dashboard", "check engine", "indicator", "diagnostic"},
		Severity:      diagnosis.SeverityWarning,
		EstimatedCost: "$50-$400",
		DIYPossible:   true,
		TimeEstimate:  "30 minutes-2 hours",
	},
	{
		Brand:         "Fiat",
		Model:         "500",
		Problem:       "Grinding noise when braking",
		Solution:      "Brake pads are likely worn down to the backing plate. Replace the pads immediately and inspect the rotors for scoring; continuing to drive will damage them further.",
		Keywords:      []string{"brakes", "brake", "grinding", "noise", "stopping", "squealing", "squeaking"},
		Severity:      diagnosis.SeverityCritical,
		EstimatedCost: "$150-$450",
		DIYPossible:   true,
		TimeEstimate:  "1-2 hours",
	},
	{
		Brand:         "Audi",
		Model:         "A4",
		Problem:       "Air conditioning not cooling",
		Solution:      "Check the refrigerant level and recharge if low. Inspect the compressor clutch and condenser for faults. A leak in the system needs professional repair before recharging.",
		Keywords:      []string{"ac", "air conditioning", "cooling", "cold", "hot air", "refrigerant"},
		Severity:      diagnosis.SeverityMinor,
		EstimatedCost: "$100-$800",
		DIYPossible:   false,
		TimeEstimate:  "1-4 hours",
	},
}

// MemoryRepository serves the catalogue from process memory.
type MemoryRepository struct {
	entries []diagnosis.CatalogEntry
}

// NewMemoryRepository builds the repository from the built-in seed plus, when
// path is non-empty, entries loaded from a YAML catalogue file.
func NewMemoryRepository(path string) (*MemoryRepository, error) {
	entries := append([]diagnosis.CatalogEntry(nil), seedCatalog...)
	if path != "" {
		extra, err := loadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, extra...)
	}
	return &MemoryRepository{entries: entries}, nil
}

// Entries returns a copy so callers cannot mutate the catalogue.
func (r *MemoryRepository) Entries(_ context.Context) ([]diagnosis.CatalogEntry, error) {
	return append([]diagnosis.CatalogEntry(nil), r.entries...), nil
}

func loadCatalogFile(path string) ([]diagnosis.CatalogEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue file: %w", err)
	}
	var doc struct {
		Entries []diagnosis.CatalogEntry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalogue file: %w", err)
	}
	return doc.Entries, nil
}

var _ diagnosis.CatalogRepository = (*MemoryRepository)(nil)

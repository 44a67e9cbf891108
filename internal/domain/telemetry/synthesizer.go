package telemetry

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Synthesizer generates plausible sensor snapshots for a vehicle. It stands
// in for a real telemetry feed; readings are drawn around the requested
// condition profile.
type Synthesizer struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// NewSynthesizer builds a synthesizer around the given random source. A nil
// source falls back to a time-seeded one.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		rng:   rng,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Snapshot produces readings for all sensors. Sensors the condition profile
// does not override use the normal baseline. Unknown conditions behave like
// "normal".
func (s *Synthesizer) Snapshot(vehicleID string, condition Condition) Snapshot {
	overlay, ok := conditionProfiles[condition]
	if !ok {
		overlay = conditionProfiles[ConditionNormal]
	}
	baseline := conditionProfiles[ConditionNormal]

	readings := make([]Reading, 0, len(sensorOrder))
	for _, sensor := range sensorOrder {
		params := baseline[sensor]
		if override, ok := overlay[sensor]; ok {
			params = override
		}
		value := params.Base + (s.uniform()*2-1)*params.Variance
		readings = append(readings, Reading{
			Sensor: sensor,
			Value:  math.Round(value*100) / 100,
			Unit:   Thresholds[sensor].Unit,
		})
	}

	return Snapshot{
		ID:        s.newID(),
		VehicleID: vehicleID,
		Timestamp: s.now(),
		Readings:  readings,
	}
}

// RandomCondition picks a condition with a 70% bias towards "normal"; the
// remaining probability mass is split evenly across the issue profiles. The
// bias keeps most synthetic snapshots healthy.
func (s *Synthesizer) RandomCondition() Condition {
	roll := s.uniform()
	if roll < 0.7 {
		return ConditionNormal
	}
	slice := 0.3 / float64(len(issueConditions))
	idx := int((roll - 0.7) / slice)
	if idx >= len(issueConditions) {
		idx = len(issueConditions) - 1
	}
	return issueConditions[idx]
}

func (s *Synthesizer) uniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

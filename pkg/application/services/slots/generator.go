package slots

import (
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// LookaheadDays extends the slot window past the horizon so that jobs
// triggered on the last days still have somewhere to land
const LookaheadDays = 7

// Generator expands a shift calendar into dated slots
type Generator struct {
	rules map[entities.DayType][]string
}

// NewGenerator indexes shift rules by day type, keeping calendar order.
// A repeated (day type, shift) rule is indexed once so slot ids stay unique.
func NewGenerator(rules []*entities.ShiftRule) *Generator {
	index := make(map[entities.DayType][]string)
	seen := make(map[entities.ShiftRule]bool)
	for _, rule := range rules {
		if rule == nil || seen[*rule] {
			continue
		}
		seen[*rule] = true
		index[rule.DayType] = append(index[rule.DayType], rule.ShiftLabel)
	}
	return &Generator{rules: index}
}

// Generate returns the slots for days [start, start+days) ordered by date then
// shift. Sundays never produce slots.
func (g *Generator) Generate(start time.Time, days int) []entities.Slot {
	result := []entities.Slot{}
	start = entities.DateOf(start)

	for i := 0; i < days; i++ {
		current := entities.AddDays(start, i)
		dayType := entities.DayTypeOf(current)
		if dayType == entities.Sunday {
			continue
		}

		for _, label := range g.rules[dayType] {
			result = append(result, entities.NewSlot(current, label, len(result)))
		}
	}

	return result
}

// ShiftsFor returns the shift labels configured for a day type
func (g *Generator) ShiftsFor(dayType entities.DayType) []string {
	if dayType == entities.Sunday {
		return nil
	}
	return g.rules[dayType]
}

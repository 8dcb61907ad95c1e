package memory

import (
	"context"
	"sync"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

// CalendarRepository provides in-memory shift calendar and capacity rules
type CalendarRepository struct {
	mu    sync.RWMutex
	rules []entities.ShiftRule
	// capacity stays nil until set so callers fall back to the defaults
	capacity *entities.CapacityRules
}

// NewCalendarRepository creates a new in-memory calendar repository
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{
		rules: []entities.ShiftRule{},
	}
}

// Verify interface compliance
var _ repositories.CalendarRepository = (*CalendarRepository)(nil)

// LoadShiftRules loads shift rules into the repository, keeping calendar order
func (r *CalendarRepository) LoadShiftRules(rules []*entities.ShiftRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range rules {
		r.rules = append(r.rules, *rule)
	}
	return nil
}

// ReplaceShiftRules discards the current calendar and loads rules in its place
func (r *CalendarRepository) ReplaceShiftRules(rules []*entities.ShiftRule) error {
	r.mu.Lock()
	r.rules = nil
	r.mu.Unlock()
	return r.LoadShiftRules(rules)
}

// SetCapacityRules replaces the capacity rules
func (r *CalendarRepository) SetCapacityRules(rules entities.CapacityRules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity = &rules
}

// GetShiftRules returns the shift calendar in load order
func (r *CalendarRepository) GetShiftRules(_ context.Context) ([]*entities.ShiftRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*entities.ShiftRule, 0, len(r.rules))
	for i := range r.rules {
		rule := r.rules[i]
		rules = append(rules, &rule)
	}
	return rules, nil
}

// GetCapacityRules returns the configured capacity rules or the defaults
func (r *CalendarRepository) GetCapacityRules(_ context.Context) (*entities.CapacityRules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.capacity == nil {
		defaults := entities.DefaultCapacityRules()
		return &defaults, nil
	}
	rules := *r.capacity
	return &rules, nil
}

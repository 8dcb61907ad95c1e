package memory

import (
	"context"
	"sync"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

// PartRepository provides in-memory part master and press storage
type PartRepository struct {
	mu       sync.RWMutex
	parts    []entities.Part
	partsMap map[entities.PartNumber]int
	machines []entities.Machine
}

// NewPartRepository creates a new in-memory part repository
func NewPartRepository(expectedParts int) *PartRepository {
	return &PartRepository{
		parts:    make([]entities.Part, 0, expectedParts),
		partsMap: make(map[entities.PartNumber]int, expectedParts),
	}
}

// Verify interface compliance
var (
	_ repositories.PartRepository    = (*PartRepository)(nil)
	_ repositories.MachineRepository = (*PartRepository)(nil)
)

// LoadParts loads parts into the repository
func (r *PartRepository) LoadParts(parts []*entities.Part) error {
	for _, part := range parts {
		r.AddPart(*part)
	}
	return nil
}

// AddPart adds a part, replacing an earlier part with the same number in place
func (r *PartRepository) AddPart(part entities.Part) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.partsMap[part.PartNumber]; exists {
		r.parts[index] = part
		return
	}
	r.partsMap[part.PartNumber] = len(r.parts)
	r.parts = append(r.parts, part)
}

// AddMachine adds a press to the repository
func (r *PartRepository) AddMachine(machine entities.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines = append(r.machines, machine)
}

// GetParts returns the parts planned on machineID in load order; an empty machineID returns all parts
func (r *PartRepository) GetParts(_ context.Context, machineID string) ([]*entities.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := make([]*entities.Part, 0, len(r.parts))
	for i := range r.parts {
		if machineID != "" && r.parts[i].MachineID != machineID {
			continue
		}
		part := r.parts[i]
		parts = append(parts, &part)
	}
	return parts, nil
}

// GetActiveMachines returns the active presses in load order
func (r *PartRepository) GetActiveMachines(_ context.Context) ([]*entities.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	machines := make([]*entities.Machine, 0, len(r.machines))
	for i := range r.machines {
		if !r.machines[i].Active {
			continue
		}
		machine := r.machines[i]
		machines = append(machines, &machine)
	}
	return machines, nil
}

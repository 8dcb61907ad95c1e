package repositories

import (
	"context"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

//go:generate mockgen -source=part_repository.go -destination=part_repository_mock.go -package=repositories

// PartRepository provides access to part master data
type PartRepository interface {
	// GetParts returns the parts planned on machineID; an empty machineID returns every part.
	GetParts(ctx context.Context, machineID string) ([]*entities.Part, error)
}

// MachineRepository provides access to the press list
type MachineRepository interface {
	GetActiveMachines(ctx context.Context) ([]*entities.Machine, error)
}

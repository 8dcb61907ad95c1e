package repositories

import (
	"context"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

//go:generate mockgen -source=calendar_repository.go -destination=calendar_repository_mock.go -package=repositories

// CalendarRepository provides the shift calendar and capacity rules
type CalendarRepository interface {
	GetShiftRules(ctx context.Context) ([]*entities.ShiftRule, error)
	GetCapacityRules(ctx context.Context) (*entities.CapacityRules, error)
}

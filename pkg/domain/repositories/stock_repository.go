package repositories

import (
	"context"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

//go:generate mockgen -source=stock_repository.go -destination=stock_repository_mock.go -package=repositories

// StockRepository provides the latest finished-goods and WIP levels
type StockRepository interface {
	GetStock(ctx context.Context, parts []entities.PartNumber) ([]*entities.StockRecord, error)
}

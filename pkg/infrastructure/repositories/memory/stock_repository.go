package memory

import (
	"context"
	"sync"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

// StockRepository provides in-memory latest stock storage
type StockRepository struct {
	mu      sync.RWMutex
	records []entities.StockRecord
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		records: []entities.StockRecord{},
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadStock loads stock records into the repository
func (r *StockRepository) LoadStock(records []*entities.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range records {
		r.records = append(r.records, *record)
	}
	return nil
}

// GetStock returns the records of the given parts
func (r *StockRepository) GetStock(_ context.Context, parts []entities.PartNumber) ([]*entities.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		wanted[part] = true
	}

	var records []*entities.StockRecord
	for i := range r.records {
		if !wanted[r.records[i].PartNumber] {
			continue
		}
		record := r.records[i]
		records = append(records, &record)
	}
	return records, nil
}

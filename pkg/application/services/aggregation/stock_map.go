package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// StockMap holds the combined starting stock of each part
type StockMap map[entities.PartNumber]decimal.Decimal

// NewStockMapFromRecords sums FG + WIP per part across all records
func NewStockMapFromRecords(records []*entities.StockRecord) StockMap {
	stock := make(StockMap, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		stock[record.PartNumber] = stock[record.PartNumber].Add(record.Total())
	}
	return stock
}

// Get returns the stock of a part, zero when the part has no record
func (sm StockMap) Get(partNumber entities.PartNumber) decimal.Decimal {
	return sm[partNumber]
}

// Has checks whether any stock record exists for a part
func (sm StockMap) Has(partNumber entities.PartNumber) bool {
	_, exists := sm[partNumber]
	return exists
}

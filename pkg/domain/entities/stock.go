package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockRecord carries the latest finished-goods and work-in-progress levels of
// a part. Either component may be missing.
type StockRecord struct {
	PartNumber     PartNumber
	FinishedGoods  decimal.NullDecimal
	WorkInProgress decimal.NullDecimal
}

// NewStockRecord creates a validated StockRecord
func NewStockRecord(partNumber PartNumber, finishedGoods, workInProgress decimal.NullDecimal) (*StockRecord, error) {
	if string(partNumber) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}

	return &StockRecord{
		PartNumber:     partNumber,
		FinishedGoods:  finishedGoods,
		WorkInProgress: workInProgress,
	}, nil
}

// Total returns FG + WIP with absent components counted as zero
func (r *StockRecord) Total() decimal.Decimal {
	total := decimal.Zero
	if r.FinishedGoods.Valid {
		total = total.Add(r.FinishedGoods.Decimal)
	}
	if r.WorkInProgress.Valid {
		total = total.Add(r.WorkInProgress.Decimal)
	}
	return total
}

package entities

import (
	"fmt"
	"time"
)

// JobTicket represents one shift of required production for a part
type JobTicket struct {
	ID             string     `json:"id"`
	PartNumber     PartNumber `json:"part_no"`
	PartName       string     `json:"part_name"`
	EarliestStart  time.Time  `json:"earliest_start_date"`
	DurationShifts int        `json:"duration_shifts"`
}

// JobTicketID derives the ticket identifier from its trigger
func JobTicketID(partNumber PartNumber, triggerDate time.Time, sequence int) string {
	return fmt.Sprintf("%s_%s_%d", partNumber, DateKey(triggerDate), sequence)
}

// NewJobTicket creates a single-shift job ticket
func NewJobTicket(part *Part, triggerDate time.Time, sequence int) (*JobTicket, error) {
	if part == nil {
		return nil, fmt.Errorf("part cannot be nil")
	}
	if sequence < 0 {
		return nil, fmt.Errorf("sequence cannot be negative, got %d", sequence)
	}

	return &JobTicket{
		ID:             JobTicketID(part.PartNumber, triggerDate, sequence),
		PartNumber:     part.PartNumber,
		PartName:       part.Name,
		EarliestStart:  DateOf(triggerDate),
		DurationShifts: 1,
	}, nil
}

package entities

import (
	"fmt"
	"strings"
	"time"
)

// DayType classifies calendar days for shift lookup
type DayType int

const (
	Weekday DayType = iota
	Saturday
	Sunday
)

// String method for DayType enum
func (d DayType) String() string {
	switch d {
	case Weekday:
		return "WEEKDAY"
	case Saturday:
		return "SATURDAY"
	case Sunday:
		return "SUNDAY"
	default:
		return "UNKNOWN"
	}
}

// ParseDayType normalizes a raw day-type string (trim, upper-case) and maps it
// onto the closed DayType set.
func ParseDayType(raw string) (DayType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WEEKDAY":
		return Weekday, nil
	case "SATURDAY":
		return Saturday, nil
	case "SUNDAY":
		return Sunday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDayType, raw)
	}
}

// DayTypeOf classifies a date by its day of week
func DayTypeOf(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	default:
		return Weekday
	}
}

// ShiftRule declares that a shift runs on days of a given type
type ShiftRule struct {
	DayType    DayType
	ShiftLabel string
}

// NewShiftRule creates a validated ShiftRule from raw calendar values
func NewShiftRule(rawDayType, shiftLabel string) (*ShiftRule, error) {
	dayType, err := ParseDayType(rawDayType)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(shiftLabel)
	if label == "" {
		return nil, fmt.Errorf("shift label cannot be empty")
	}

	return &ShiftRule{
		DayType:    dayType,
		ShiftLabel: label,
	}, nil
}

// Slot is one schedulable (date, shift) unit of machine capacity
type Slot struct {
	ID         string    `json:"slot_id"`
	Date       time.Time `json:"date"`
	DayOfMonth int       `json:"day_num"`
	ShiftLabel string    `json:"shift"`
	Ordinal    int       `json:"ordinal"`
}

// SlotID derives a stable slot identifier from its date and shift
func SlotID(date time.Time, shiftLabel string) string {
	return DateKey(date) + "_" + shiftLabel
}

// NewSlot creates a slot at the given position of the slot sequence
func NewSlot(date time.Time, shiftLabel string, ordinal int) Slot {
	day := DateOf(date)
	return Slot{
		ID:         SlotID(day, shiftLabel),
		Date:       day,
		DayOfMonth: day.Day(),
		ShiftLabel: shiftLabel,
		Ordinal:    ordinal,
	}
}

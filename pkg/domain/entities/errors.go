package entities

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid planning request")
	ErrNoMasterData   = errors.New("no master data for machine")
	ErrEmptyCalendar  = errors.New("shift calendar produced no slots")
	ErrUnknownDayType = errors.New("unknown day type")
)

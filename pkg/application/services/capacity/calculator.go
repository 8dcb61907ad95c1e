package capacity

// Zero-safe capacity arithmetic. Every function returns 0 instead of dividing by zero.

// OutputPerHour returns the parts produced per hour at the given efficiency
func OutputPerHour(cycleTimeSeconds float64, cavity int, efficiency float64) float64 {
	if cycleTimeSeconds <= 0 {
		return 0
	}
	return (3600 / cycleTimeSeconds) * float64(cavity) * efficiency
}

// RequiredHours returns the machine hours needed to produce quantity
func RequiredHours(quantity, outputPerHour float64) float64 {
	if outputPerHour == 0 {
		return 0
	}
	return quantity / outputPerHour
}

// RequiredDays converts machine hours into working days
func RequiredDays(hours, effectiveHoursPerDay float64) float64 {
	if effectiveHoursPerDay == 0 {
		return 0
	}
	return hours / effectiveHoursPerDay
}

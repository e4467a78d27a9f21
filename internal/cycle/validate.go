package cycle

import "strconv"

// Temperature bounds for a plausible basal body temperature, in °F.
const (
	MinTemperature = 95.0
	MaxTemperature = 105.0
)

// ValidateReading checks a reading's range and format invariants. It is
// the single gate used by both direct entry and CSV import.
func ValidateReading(r Reading) error {
	if !validDate(r.Date) {
		return &ValidationError{Field: "date", Value: r.Date, Reason: "not a valid calendar date (want YYYY-MM-DD)"}
	}
	if r.Temperature < MinTemperature || r.Temperature > MaxTemperature {
		return &ValidationError{
			Field:  "temperature",
			Value:  strconv.FormatFloat(r.Temperature, 'f', -1, 64),
			Reason: "outside [95.0, 105.0] °F",
		}
	}
	return nil
}

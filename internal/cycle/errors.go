package cycle

import "fmt"

var (
	// ErrMissingColumns is returned when a CSV header lacks a date or
	// temperature column. No partial import occurs.
	ErrMissingColumns = fmt.Errorf("csv header missing required date or temperature column")

	// ErrEmptyImport is returned when a CSV parsed cleanly but yielded
	// zero new readings, whether the rows were malformed, out of range,
	// duplicates of existing dates, or simply absent.
	ErrEmptyImport = fmt.Errorf("csv import produced no new readings")
)

// ValidationError describes a single reading that failed range or format
// checks. The offending reading is never stored.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reading: %s %q: %s", e.Field, e.Value, e.Reason)
}

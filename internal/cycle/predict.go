package cycle

import "math"

// Cycle length bounds in days; estimates outside this range are clamped.
const (
	minCycleDays = 21
	maxCycleDays = 35
)

// Predict projects the next fertile window from the two most recent
// detected windows, or returns nil when fewer than two exist. Each
// window's cycle length is estimated as 28 + (dayOfMonth(start) - 14),
// treating a day-14 start as a canonical 28-day cycle, clamped to
// [21, 35]. The two estimates are averaged and the next window starts
// that many days (rounded) after the last window's start.
func Predict(windows []FertileWindow) *Prediction {
	if len(windows) < 2 {
		return nil
	}

	prev := windows[len(windows)-2]
	last := windows[len(windows)-1]

	avg := (estimateCycleLength(prev) + estimateCycleLength(last)) / 2
	days := int(math.Round(avg))

	start := addDays(last.StartDate, days)
	return &Prediction{
		StartDate:       start,
		EndDate:         addDays(start, windowSize-1),
		CycleLengthDays: days,
	}
}

func estimateCycleLength(w FertileWindow) float64 {
	est := 28 + (dayOfMonth(w.StartDate) - 14)
	if est < minCycleDays {
		est = minCycleDays
	}
	if est > maxCycleDays {
		est = maxCycleDays
	}
	return float64(est)
}

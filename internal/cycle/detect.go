package cycle

import "sort"

// windowSize is the span of a fertile window in readings and in days.
const windowSize = 7

// minMonthReadings is the minimum number of readings a month needs before
// a fertile window is detected for it. Sparser months are silently skipped.
const minMonthReadings = 14

// Detect computes one fertile window per qualifying month from the given
// readings. It is a pure function: the readings are bucketed by YYYY-MM,
// each bucket with at least minMonthReadings entries is scanned for the
// 7 consecutive readings (by position in date order, not calendar
// contiguity) with the highest mean temperature, and the earliest span
// wins exact ties. Windows are returned in month order.
func Detect(readings []Reading) []FertileWindow {
	byMonth := make(map[string][]Reading)
	for _, r := range readings {
		k := monthKey(r.Date)
		byMonth[k] = append(byMonth[k], r)
	}

	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)

	var windows []FertileWindow
	for _, month := range months {
		group := byMonth[month]
		if len(group) < minMonthReadings {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].Date < group[j].Date
		})

		bestOffset := 0
		bestMean := meanTemperature(group[:windowSize])
		for i := 1; i+windowSize <= len(group); i++ {
			if m := meanTemperature(group[i : i+windowSize]); m > bestMean {
				bestMean = m
				bestOffset = i
			}
		}

		start := group[bestOffset].Date
		windows = append(windows, FertileWindow{
			Month:              month,
			StartDate:          start,
			EndDate:            addDays(start, windowSize-1),
			AverageTemperature: bestMean,
		})
	}

	return windows
}

func meanTemperature(readings []Reading) float64 {
	var sum float64
	for _, r := range readings {
		sum += r.Temperature
	}
	return sum / float64(len(readings))
}

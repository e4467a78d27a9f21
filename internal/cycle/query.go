package cycle

// InAnyWindow reports whether date falls inside any of the given fertile
// windows, bounds inclusive. Lexicographic comparison is correct for
// YYYY-MM-DD dates. This is the single membership check shared by CSV
// export and the HTTP query so annotations can never diverge.
func InAnyWindow(windows []FertileWindow, date string) bool {
	for _, w := range windows {
		if date >= w.StartDate && date <= w.EndDate {
			return true
		}
	}
	return false
}

package cycle

// CervixHeight represents the normalized optional secondary signal.
// Free-text values from CSV import are carried through as-is.
type CervixHeight string

const (
	CervixLow    CervixHeight = "Low"
	CervixMedium CervixHeight = "Medium"
	CervixHigh   CervixHeight = "High"
)

// Reading is one calendar day's data. Date is a civil date in YYYY-MM-DD
// form and is the unique key within the store.
type Reading struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"` // degrees Fahrenheit

	// CervixHeight is nil when the signal was not recorded; an empty
	// string is a recorded-but-blank value.
	CervixHeight *CervixHeight `json:"cervixHeight,omitempty"`

	OvulationTest bool `json:"ovulationTest"`
}

// FertileWindow is the 7-day span within one month judged most likely to
// correspond to peak fertility: the 7 consecutive readings (by position in
// the sorted month group) with the highest mean temperature. EndDate is
// always StartDate plus six civil days, even when the underlying readings
// have calendar gaps.
type FertileWindow struct {
	Month              string  `json:"month"` // YYYY-MM
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	AverageTemperature float64 `json:"averageTemperature"`
}

// Prediction projects the next fertile window from the two most recent
// detected windows.
type Prediction struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CycleLengthDays int    `json:"cycleLengthDays"`
}

// Snapshot is the full queryable state handed to consumers: the reading
// history plus everything derived from it.
type Snapshot struct {
	Readings       []Reading       `json:"readings"`
	FertileWindows []FertileWindow `json:"fertileWindows"`
	Prediction     *Prediction     `json:"prediction,omitempty"`
	TotalReadings  int             `json:"totalReadings"`
	DistinctMonths int             `json:"distinctMonths"`
}

// Store is the contract the in-memory record store must satisfy. Upsert
// replaces any existing reading for the same date.
type Store interface {
	Upsert(r Reading) error
	All() []Reading
	Count() int
	DistinctMonths() int
}

// Repository is the persistence port: a flat ordered reading list and
// nothing else. Derived state is always recomputed on load.
type Repository interface {
	Load() ([]Reading, error)
	Save(readings []Reading) error
}

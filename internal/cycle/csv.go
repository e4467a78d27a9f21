package cycle

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/bastanley1211/fertilitytracker/internal/common"
)

// csvColumns holds the resolved column indices of an import header.
// Optional columns are -1 when the header does not carry them.
type csvColumns struct {
	date        int
	temperature int
	cervix      int
	ovulation   int
}

// resolveColumns locates columns by header substring, case-insensitive:
// "date" and "temp" are required, "cervix"/"height" and
// "ovulation"/"strip" are optional. Unknown columns are ignored, which is
// what lets exported CSV (with its derived Fertile Window column) be
// re-imported unchanged.
func resolveColumns(header []string) (csvColumns, error) {
	cols := csvColumns{date: -1, temperature: -1, cervix: -1, ovulation: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.date == -1 && strings.Contains(name, "date"):
			cols.date = i
		case cols.temperature == -1 && strings.Contains(name, "temp"):
			cols.temperature = i
		case cols.cervix == -1 && common.HasAny(name, "cervix", "height"):
			cols.cervix = i
		case cols.ovulation == -1 && common.HasAny(name, "ovulation", "strip"):
			cols.ovulation = i
		}
	}
	if cols.date == -1 || cols.temperature == -1 {
		return cols, ErrMissingColumns
	}
	return cols, nil
}

// ParseCSV parses raw CSV text (first line a header row) into validated
// readings. Rows with an unrecognized date shape, an unparseable or
// out-of-range temperature, or too few fields are silently skipped;
// import is best-effort and partial success is not a failure. The only
// hard error is a header missing the date or temperature column.
func ParseCSV(raw string) ([]Reading, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil, ErrMissingColumns
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	required := cols.date
	if cols.temperature > required {
		required = cols.temperature
	}

	var readings []Reading
	for _, row := range records[1:] {
		if len(row) <= required {
			continue
		}

		date, err := normalizeDate(row[cols.date])
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(row[cols.temperature]), 64)
		if err != nil {
			continue
		}

		r := Reading{Date: date, Temperature: temp}
		if cols.cervix >= 0 && cols.cervix < len(row) {
			v := CervixHeight(strings.TrimSpace(row[cols.cervix]))
			r.CervixHeight = &v
		}
		if cols.ovulation >= 0 && cols.ovulation < len(row) {
			r.OvulationTest = parseOvulation(row[cols.ovulation])
		}

		if ValidateReading(r) != nil {
			continue
		}
		readings = append(readings, r)
	}

	return readings, nil
}

// parseOvulation maps "true", "1" and "yes" (case-insensitive) to a
// positive test result; everything else is negative.
func parseOvulation(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// ExportCSV renders the readings in store order with a trailing derived
// column marking fertile-window membership. Temperatures use the shortest
// representation that survives a round trip, so re-importing exported
// data reproduces the same readings.
func ExportCSV(readings []Reading, windows []FertileWindow) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Date", "Temperature (°F)", "Cervix Height", "Ovulation Strip", "Fertile Window"})
	for _, r := range readings {
		cervix := ""
		if r.CervixHeight != nil {
			cervix = string(*r.CervixHeight)
		}
		ovulation := "No"
		if r.OvulationTest {
			ovulation = "Yes"
		}
		fertile := "No"
		if InAnyWindow(windows, r.Date) {
			fertile = "Yes"
		}
		w.Write([]string{
			r.Date,
			strconv.FormatFloat(r.Temperature, 'f', -1, 64),
			cervix,
			ovulation,
			fertile,
		})
	}

	w.Flush()
	return b.String()
}

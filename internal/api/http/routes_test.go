package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bastanley1211/fertilitytracker/internal/cycle"
	"github.com/bastanley1211/fertilitytracker/internal/store"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	svc := cycle.NewService(store.NewMemoryStore(), nil)
	RegisterRoutes(app, svc)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

// TestUpsertReadingValidation verifies that malformed direct entries are
// rejected with 400 and never reach the store.
func TestUpsertReadingValidation(t *testing.T) {
	app := newTestApp()

	// Missing temperature should return 400.
	resp := postJSON(t, app, "/api/v1/readings", `{"date":"2024-02-01"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range temperature should also return 400.
	resp = postJSON(t, app, "/api/v1/readings", `{"date":"2024-02-01","temperature":110}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// An impossible calendar date passes the struct tags but must be
	// caught by the store's own validation.
	resp = postJSON(t, app, "/api/v1/readings", `{"date":"2024-02-30","temperature":98.2}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil)
	rs, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap cycle.Snapshot
	if err := json.NewDecoder(rs.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TotalReadings != 0 {
		t.Fatalf("rejected entries must not be stored, got %d readings", snap.TotalReadings)
	}
}

func TestUpsertThenSnapshot(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/readings", `{"date":"2024-02-01","temperature":98.2,"cervixHeight":"High","ovulationTest":true}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil)
	rs, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rs.StatusCode)
	}

	var snap cycle.Snapshot
	if err := json.NewDecoder(rs.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TotalReadings != 1 || snap.DistinctMonths != 1 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
	r := snap.Readings[0]
	if r.Date != "2024-02-01" || r.Temperature != 98.2 || !r.OvulationTest {
		t.Fatalf("unexpected reading: %+v", r)
	}
	if r.CervixHeight == nil || *r.CervixHeight != cycle.CervixHigh {
		t.Fatalf("cervix height not stored: %v", r.CervixHeight)
	}
}

func TestImportEndpoint(t *testing.T) {
	app := newTestApp()

	csv := "Date,Temp\n2024-02-01,98.2\n13/40/2024,99.0\n2024-02-02,150\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Imported int `json:"imported"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Imported != 1 {
		t.Fatalf("expected 1 imported reading, got %d", body.Imported)
	}

	// A header without the required columns is a 400.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader("Mood,Notes\nfine,ok\n"))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Re-importing the same rows lands nothing: 422.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(csv))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp()

	for day := 1; day <= 14; day++ {
		body := fmt.Sprintf(`{"date":"2024-01-%02d","temperature":%v}`, day, 97.0)
		if resp := postJSON(t, app, "/api/v1/readings", body); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed upsert failed with status %d", resp.StatusCode)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", ct)
	}
}

func TestFertileQuery(t *testing.T) {
	app := newTestApp()

	// Flat month except a warm stretch on days 5-11.
	for day := 1; day <= 14; day++ {
		temp := 97.0
		if day >= 5 && day <= 11 {
			temp = 98.0
		}
		body := fmt.Sprintf(`{"date":"2024-01-%02d","temperature":%v}`, day, temp)
		if resp := postJSON(t, app, "/api/v1/readings", body); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed upsert failed with status %d", resp.StatusCode)
		}
	}

	check := func(date string, want bool) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/fertile?date="+date, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		var body struct {
			Fertile bool `json:"fertile"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Fertile != want {
			t.Fatalf("fertile(%s) = %v, want %v", date, body.Fertile, want)
		}
	}

	check("2024-01-05", true)
	check("2024-01-11", true)
	check("2024-01-04", false)
	check("2024-01-12", false)

	// Missing or malformed date parameters return 400.
	for _, q := range []string{"", "?date=yesterday"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/fertile"+q, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status %d for %q, got %d", http.StatusBadRequest, q, resp.StatusCode)
		}
	}
}

package reports

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourdesk/internal/api/authz"
	"tourdesk/internal/db"
	engine "tourdesk/internal/reports"
	"tourdesk/internal/testutil"
)

func setupReportTest(t *testing.T) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database, 1000)

	t.Cleanup(func() {
		queries = nil
		pageSize = 0
	})

	return database
}

func withPrincipal(req *http.Request) *http.Request {
	principal := &authz.Principal{ID: 1, Email: "ops@example.com", Name: "Ops"}
	return req.WithContext(authz.ContextWithPrincipal(req.Context(), principal))
}

func TestHandleProfitabilityReport_Unauthorized(t *testing.T) {
	setupReportTest(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/reports/profitability?start_date=2026-07-01&end_date=2026-07-31", nil)
	recorder := httptest.NewRecorder()

	HandleProfitabilityReport(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleProfitabilityReport_InvalidDates(t *testing.T) {
	setupReportTest(t)

	cases := []string{
		"",                                          // missing both
		"start_date=2026-07-01",                     // missing end
		"start_date=07/01/2026&end_date=2026-07-31", // wrong layout
		"start_date=2026-07-31&end_date=2026-07-01", // inverted range
	}
	for _, query := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profitability?"+query, nil)
		req = withPrincipal(req)
		recorder := httptest.NewRecorder()

		HandleProfitabilityReport(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status %d, want 400", query, recorder.Code)
		}
	}
}

func TestHandleProfitabilityReport_Success(t *testing.T) {
	database := setupReportTest(t)
	ctx := context.Background()

	result, err := database.ExecContext(ctx, "INSERT INTO activities (title) VALUES ('Colosseum Tour')")
	if err != nil {
		t.Fatalf("insert activity: %v", err)
	}
	activityID, _ := result.LastInsertId()

	result, err = database.ExecContext(ctx,
		"INSERT INTO availabilities (activity_id, local_date, local_time, vacancy_sold) VALUES (?, '2026-07-10', '09:00', 2)",
		activityID)
	if err != nil {
		t.Fatalf("insert availability: %v", err)
	}
	slotID, _ := result.LastInsertId()

	if _, err := database.ExecContext(ctx,
		"INSERT INTO activity_bookings (availability_id, activity_id, travel_date, status, total_price_gross, pax) VALUES (?, ?, '2026-07-10', 'CONFIRMED', 150, 3)",
		slotID, activityID); err != nil {
		t.Fatalf("insert booking: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/reports/profitability?start_date=2026-07-01&end_date=2026-07-31&group_by=activity", nil)
	req = withPrincipal(req)
	recorder := httptest.NewRecorder()

	HandleProfitabilityReport(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
	if recorder.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("content type: %s", recorder.Header().Get("Content-Type"))
	}

	var report engine.Report
	if err := json.NewDecoder(recorder.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("items: %d", len(report.Items))
	}
	if report.Items[0].Label != "Colosseum Tour" || report.Items[0].Revenue != 150 {
		t.Fatalf("bucket: %+v", report.Items[0])
	}
	if report.Totals.Revenue != 150 || report.Totals.Pax != 3 {
		t.Fatalf("totals: %+v", report.Totals)
	}
}

func TestHandleProfitabilityReport_EmptyWindow(t *testing.T) {
	setupReportTest(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/reports/profitability?start_date=2026-01-01&end_date=2026-01-31", nil)
	req = withPrincipal(req)
	recorder := httptest.NewRecorder()

	HandleProfitabilityReport(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}

	var report engine.Report
	if err := json.NewDecoder(recorder.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Items) != 0 || report.Totals.Revenue != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

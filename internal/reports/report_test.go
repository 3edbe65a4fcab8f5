package reports

import (
	"context"
	"testing"

	"tourdesk/internal/db"
	"tourdesk/internal/testutil"
)

func seedActivity(t *testing.T, database *db.DB, title string) int64 {
	t.Helper()
	result, err := database.ExecContext(context.Background(),
		"INSERT INTO activities (title) VALUES (?)", title)
	if err != nil {
		t.Fatalf("insert activity: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func seedAvailability(t *testing.T, database *db.DB, activityID int64, date string, vacancySold int64) int64 {
	t.Helper()
	result, err := database.ExecContext(context.Background(),
		"INSERT INTO availabilities (activity_id, local_date, local_time, vacancy_sold) VALUES (?, ?, ?, ?)",
		activityID, date, "09:00", vacancySold)
	if err != nil {
		t.Fatalf("insert availability: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func seedBooking(t *testing.T, database *db.DB, availabilityID, activityID int64, date, status string, gross, net float64, pax int64) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		"INSERT INTO activity_bookings (availability_id, activity_id, travel_date, status, total_price_gross, total_price_net, pax) VALUES (?, ?, ?, ?, ?, ?, ?)",
		availabilityID, activityID, date, status, gross, net, pax)
	if err != nil {
		t.Fatalf("insert booking: %v", err)
	}
}

func seedGuide(t *testing.T, database *db.DB, name string, paidInCash bool) int64 {
	t.Helper()
	result, err := database.ExecContext(context.Background(),
		"INSERT INTO guides (name, paid_in_cash) VALUES (?, ?)", name, paidInCash)
	if err != nil {
		t.Fatalf("insert guide: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func seedGuideAssignment(t *testing.T, database *db.DB, guideID, availabilityID int64) int64 {
	t.Helper()
	result, err := database.ExecContext(context.Background(),
		"INSERT INTO guide_assignments (guide_id, availability_id) VALUES (?, ?)", guideID, availabilityID)
	if err != nil {
		t.Fatalf("insert guide assignment: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func seedSeasonCost(t *testing.T, database *db.DB, activityID int64, start, end string, cost float64) {
	t.Helper()
	result, err := database.ExecContext(context.Background(),
		"INSERT INTO cost_seasons (name, start_date, end_date, position) VALUES (?, ?, ?, 1)",
		"Season", start, end)
	if err != nil {
		t.Fatalf("insert season: %v", err)
	}
	seasonID, _ := result.LastInsertId()
	_, err = database.ExecContext(context.Background(),
		"INSERT INTO activity_season_costs (activity_id, season_id, cost) VALUES (?, ?, ?)",
		activityID, seasonID, cost)
	if err != nil {
		t.Fatalf("insert season cost: %v", err)
	}
}

func seedRate(t *testing.T, database *db.DB, resourceType string, resourceID int64, rate float64) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		"INSERT INTO resource_rates (resource_type, resource_id, rate) VALUES (?, ?, ?)",
		resourceType, resourceID, rate)
	if err != nil {
		t.Fatalf("insert rate: %v", err)
	}
}

func generate(t *testing.T, database *db.DB, p Params) *Report {
	t.Helper()
	report, err := Generate(context.Background(), database.Queries, p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return report
}

func TestGenerate_EndToEnd(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	activityID := seedActivity(t, database, "Colosseum Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 2)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "CONFIRMED", 100, 80, 4)

	guideID := seedGuide(t, database, "Marco", false)
	seedGuideAssignment(t, database, guideID, slotID)
	seedSeasonCost(t, database, activityID, "2026-06-01", "2026-09-30", 30)

	escortResult, err := database.ExecContext(ctx, "INSERT INTO escorts (name) VALUES ('Giulia')")
	if err != nil {
		t.Fatalf("insert escort: %v", err)
	}
	escortID, _ := escortResult.LastInsertId()
	if _, err := database.ExecContext(ctx,
		"INSERT INTO escort_assignments (escort_id, availability_id) VALUES (?, ?)", escortID, slotID); err != nil {
		t.Fatalf("insert escort assignment: %v", err)
	}
	seedRate(t, database, db.ResourceEscort, escortID, 50)

	contactResult, err := database.ExecContext(ctx, "INSERT INTO headphone_contacts (name) VALUES ('AudioCo')")
	if err != nil {
		t.Fatalf("insert headphone contact: %v", err)
	}
	contactID, _ := contactResult.LastInsertId()
	if _, err := database.ExecContext(ctx,
		"INSERT INTO headphone_assignments (headphone_contact_id, availability_id) VALUES (?, ?)", contactID, slotID); err != nil {
		t.Fatalf("insert headphone assignment: %v", err)
	}
	seedRate(t, database, db.ResourceHeadphone, contactID, 5)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})

	if len(report.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(report.Items))
	}
	bucket := report.Items[0]
	if bucket.Label != "Colosseum Tour" {
		t.Fatalf("label: %q", bucket.Label)
	}
	if bucket.Revenue != 100 || bucket.Bookings != 1 || bucket.Pax != 4 {
		t.Fatalf("revenue pass: %+v", bucket)
	}
	if bucket.GuideCosts != 30 || bucket.EscortCosts != 50 || bucket.HeadphoneCosts != 10 || bucket.PrintingCosts != 0 {
		t.Fatalf("cost passes: %+v", bucket)
	}
	if bucket.TotalCosts != 90 || bucket.Profit != 10 || bucket.Margin != 10 {
		t.Fatalf("derived fields: %+v", bucket)
	}

	totals := report.Totals
	if totals.Revenue != 100 || totals.TotalCosts != 90 || totals.Profit != 10 || totals.Margin != 10 {
		t.Fatalf("totals: %+v", totals)
	}
}

func TestGenerate_NetPriceFallback(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	// Reseller bookings arrive without a gross price.
	seedBooking(t, database, slotID, activityID, "2026-07-10", "CONFIRMED", 0, 25, 2)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.Revenue != 25 {
		t.Fatalf("revenue: got %v, want 25", report.Totals.Revenue)
	}
}

func TestGenerate_ExcludesNonReportableStatuses(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "CONFIRMED", 100, 0, 2)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "COMPLETED", 60, 0, 1)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "CANCELLED", 500, 0, 5)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "ON_HOLD", 200, 0, 2)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.Revenue != 160 || report.Totals.Bookings != 2 || report.Totals.Pax != 3 {
		t.Fatalf("totals: %+v", report.Totals)
	}
}

func TestGenerate_SkipsDanglingSlotReferences(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedBooking(t, database, slotID, activityID, "2026-07-10", "CONFIRMED", 100, 0, 2)
	// References a slot outside the window; the row is dropped, not fatal.
	seedBooking(t, database, 9999, activityID, "2026-07-10", "CONFIRMED", 70, 0, 1)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.Revenue != 100 || report.Totals.Bookings != 1 {
		t.Fatalf("totals: %+v", report.Totals)
	}
}

func TestGenerate_CashPaidGuideExcluded(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedSeasonCost(t, database, activityID, "2026-06-01", "2026-09-30", 30)

	cashGuide := seedGuide(t, database, "Cash Guide", true)
	seedGuideAssignment(t, database, cashGuide, slotID)
	regularGuide := seedGuide(t, database, "Regular Guide", false)
	seedGuideAssignment(t, database, regularGuide, slotID)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.GuideCosts != 30 {
		t.Fatalf("guide costs: got %v, want 30", report.Totals.GuideCosts)
	}
}

func TestGenerate_ServiceGroupBilledOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	activityID := seedActivity(t, database, "Vatican Tour")
	slotA := seedAvailability(t, database, activityID, "2026-07-10", 0)
	slotB := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedSeasonCost(t, database, activityID, "2026-06-01", "2026-09-30", 30)

	guideID := seedGuide(t, database, "Marco", false)
	assignA := seedGuideAssignment(t, database, guideID, slotA)
	assignB := seedGuideAssignment(t, database, guideID, slotB)

	groupResult, err := database.ExecContext(ctx,
		"INSERT INTO service_groups (guide_id) VALUES (?)", guideID)
	if err != nil {
		t.Fatalf("insert service group: %v", err)
	}
	groupID, _ := groupResult.LastInsertId()
	if _, err := database.ExecContext(ctx,
		"INSERT INTO service_group_members (service_group_id, guide_assignment_id, is_primary) VALUES (?, ?, TRUE)", groupID, assignA); err != nil {
		t.Fatalf("insert primary member: %v", err)
	}
	if _, err := database.ExecContext(ctx,
		"INSERT INTO service_group_members (service_group_id, guide_assignment_id, is_primary) VALUES (?, ?, FALSE)", groupID, assignB); err != nil {
		t.Fatalf("insert secondary member: %v", err)
	}

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.GuideCosts != 30 {
		t.Fatalf("guide costs: got %v, want 30", report.Totals.GuideCosts)
	}
}

func TestGenerate_EscortChargedOncePerDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	activityID := seedActivity(t, database, "Vatican Tour")
	slotA := seedAvailability(t, database, activityID, "2026-07-10", 0)
	slotB := seedAvailability(t, database, activityID, "2026-07-10", 0)
	slotNextDay := seedAvailability(t, database, activityID, "2026-07-11", 0)

	escortResult, err := database.ExecContext(ctx, "INSERT INTO escorts (name) VALUES ('Giulia')")
	if err != nil {
		t.Fatalf("insert escort: %v", err)
	}
	escortID, _ := escortResult.LastInsertId()
	for _, slotID := range []int64{slotA, slotB, slotNextDay} {
		if _, err := database.ExecContext(ctx,
			"INSERT INTO escort_assignments (escort_id, availability_id) VALUES (?, ?)", escortID, slotID); err != nil {
			t.Fatalf("insert escort assignment: %v", err)
		}
	}
	seedRate(t, database, db.ResourceEscort, escortID, 50)

	// Grouped by activity everything lands in one bucket: one charge for the
	// 10th, one for the 11th.
	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.EscortCosts != 100 {
		t.Fatalf("escort costs: got %v, want 100", report.Totals.EscortCosts)
	}
}

func TestGenerate_OverrideBeatsResolvedCost(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedSeasonCost(t, database, activityID, "2026-06-01", "2026-09-30", 30)

	guideID := seedGuide(t, database, "Marco", false)
	assignmentID := seedGuideAssignment(t, database, guideID, slotID)
	if _, err := database.ExecContext(ctx,
		"INSERT INTO assignment_cost_overrides (assignment_type, assignment_id, cost) VALUES (?, ?, ?)",
		db.ResourceGuide, assignmentID, 99); err != nil {
		t.Fatalf("insert override: %v", err)
	}

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	if report.Totals.GuideCosts != 99 {
		t.Fatalf("guide costs: got %v, want 99", report.Totals.GuideCosts)
	}
}

func TestGenerate_GroupByDate(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotA := seedAvailability(t, database, activityID, "2026-07-10", 0)
	slotB := seedAvailability(t, database, activityID, "2026-07-11", 0)
	seedBooking(t, database, slotA, activityID, "2026-07-10", "CONFIRMED", 100, 0, 2)
	seedBooking(t, database, slotB, activityID, "2026-07-11", "CONFIRMED", 40, 0, 1)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31", GroupBy: GroupByDate})
	if len(report.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(report.Items))
	}
	// Sorted by revenue descending.
	if report.Items[0].Key != "2026-07-10" || report.Items[0].Revenue != 100 {
		t.Fatalf("first bucket: %+v", report.Items[0])
	}
	if report.Items[1].Key != "2026-07-11" || report.Items[1].Revenue != 40 {
		t.Fatalf("second bucket: %+v", report.Items[1])
	}
}

func TestGenerate_MarginZeroWithoutRevenue(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	seedSeasonCost(t, database, activityID, "2026-06-01", "2026-09-30", 30)
	guideID := seedGuide(t, database, "Marco", false)
	seedGuideAssignment(t, database, guideID, slotID)

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31"})
	totals := report.Totals
	if totals.Revenue != 0 || totals.Profit != -30 || totals.Margin != 0 {
		t.Fatalf("totals: %+v", totals)
	}
}

func TestGenerate_PagesThroughBulkReads(t *testing.T) {
	database := testutil.NewTestDB(t)

	activityID := seedActivity(t, database, "Vatican Tour")
	slotID := seedAvailability(t, database, activityID, "2026-07-10", 0)
	for i := 0; i < 5; i++ {
		seedBooking(t, database, slotID, activityID, "2026-07-10", "CONFIRMED", 10, 0, 1)
	}

	report := generate(t, database, Params{StartDate: "2026-07-01", EndDate: "2026-07-31", PageSize: 2})
	if report.Totals.Bookings != 5 || report.Totals.Revenue != 50 {
		t.Fatalf("totals: %+v", report.Totals)
	}
}

package costs

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourdesk/internal/api/authz"
	"tourdesk/internal/db"
	"tourdesk/internal/testutil"
)

func setupCostsTest(t *testing.T) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database)

	t.Cleanup(func() {
		queries = nil
	})

	return database
}

func withAdmin(req *http.Request) *http.Request {
	principal := &authz.Principal{ID: 1, Email: "admin@example.com", Name: "Admin", IsAdmin: true}
	return req.WithContext(authz.ContextWithPrincipal(req.Context(), principal))
}

func withUser(req *http.Request) *http.Request {
	principal := &authz.Principal{ID: 2, Email: "ops@example.com", Name: "Ops"}
	return req.WithContext(authz.ContextWithPrincipal(req.Context(), principal))
}

func TestHandleCreateSeason(t *testing.T) {
	setupCostsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/costs/seasons",
		strings.NewReader(`{"name":"Summer","startDate":"2026-06-01","endDate":"2026-09-30","position":1}`))
	req = withAdmin(req)
	recorder := httptest.NewRecorder()

	HandleCreateSeason(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var resp seasonResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == 0 || resp.StartDate != "2026-06-01" {
		t.Fatalf("response: %+v", resp)
	}
}

func TestHandleCreateSeason_RequiresAdmin(t *testing.T) {
	setupCostsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/costs/seasons",
		strings.NewReader(`{"name":"Summer","startDate":"2026-06-01","endDate":"2026-09-30"}`))
	req = withUser(req)
	recorder := httptest.NewRecorder()

	HandleCreateSeason(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleCreateSeason_InvertedRange(t *testing.T) {
	setupCostsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/costs/seasons",
		strings.NewReader(`{"name":"Summer","startDate":"2026-09-30","endDate":"2026-06-01"}`))
	req = withAdmin(req)
	recorder := httptest.NewRecorder()

	HandleCreateSeason(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleListSeasons_ReadNeedsSessionOnly(t *testing.T) {
	setupCostsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/costs/seasons", nil)
	req = withUser(req)
	recorder := httptest.NewRecorder()

	HandleListSeasons(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleCreateActivityCost_GlobalAndGuide(t *testing.T) {
	database := setupCostsTest(t)
	ctx := context.Background()

	result, err := database.ExecContext(ctx, "INSERT INTO activities (title) VALUES ('Colosseum Tour')")
	if err != nil {
		t.Fatalf("insert activity: %v", err)
	}
	activityID, _ := result.LastInsertId()
	result, err = database.ExecContext(ctx, "INSERT INTO guides (name) VALUES ('Marco')")
	if err != nil {
		t.Fatalf("insert guide: %v", err)
	}
	guideID, _ := result.LastInsertId()

	// Global legacy rate: no guideId.
	body, _ := json.Marshal(map[string]any{"activityId": activityID, "cost": 20})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/costs/activity-costs", strings.NewReader(string(body)))
	req = withAdmin(req)
	recorder := httptest.NewRecorder()
	HandleCreateActivityCost(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("global: status %d, body: %s", recorder.Code, recorder.Body.String())
	}

	// Guide-specific legacy rate.
	body, _ = json.Marshal(map[string]any{"activityId": activityID, "guideId": guideID, "cost": 10})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/costs/activity-costs", strings.NewReader(string(body)))
	req = withAdmin(req)
	recorder = httptest.NewRecorder()
	HandleCreateActivityCost(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("guide: status %d, body: %s", recorder.Code, recorder.Body.String())
	}

	costs, err := database.Queries.ListGuideActivityCosts(ctx)
	if err != nil {
		t.Fatalf("list costs: %v", err)
	}
	if len(costs) != 2 {
		t.Fatalf("costs: %d", len(costs))
	}
	var globals, guidesCount int
	for _, c := range costs {
		if c.GuideID.Valid {
			guidesCount++
		} else {
			globals++
		}
	}
	if globals != 1 || guidesCount != 1 {
		t.Fatalf("globals=%d guides=%d", globals, guidesCount)
	}
}

func TestHandleUpsertRate_ReplacesExisting(t *testing.T) {
	database := setupCostsTest(t)

	for _, rate := range []float64{50, 75} {
		body, _ := json.Marshal(map[string]any{"resourceType": db.ResourceEscort, "resourceId": 1, "rate": rate})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/rates", strings.NewReader(string(body)))
		req = withAdmin(req)
		recorder := httptest.NewRecorder()
		HandleUpsertRate(recorder, req)
		if recorder.Code != http.StatusNoContent {
			t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
		}
	}

	rates, err := database.Queries.ListResourceRates(context.Background())
	if err != nil {
		t.Fatalf("list rates: %v", err)
	}
	if len(rates) != 1 || rates[0].Rate != 75 {
		t.Fatalf("rates: %+v", rates)
	}
}

func TestHandleUpsertRate_RejectsGuideType(t *testing.T) {
	setupCostsTest(t)

	// Guides are priced through the tiered tables, not flat rates.
	req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/rates",
		strings.NewReader(`{"resourceType":"guide","resourceId":1,"rate":50}`))
	req = withAdmin(req)
	recorder := httptest.NewRecorder()

	HandleUpsertRate(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleUpsertOverride(t *testing.T) {
	database := setupCostsTest(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/overrides",
		strings.NewReader(`{"assignmentType":"guide","assignmentId":5,"cost":99}`))
	req = withAdmin(req)
	recorder := httptest.NewRecorder()

	HandleUpsertOverride(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	overrides, err := database.Queries.ListAssignmentCostOverrides(context.Background())
	if err != nil {
		t.Fatalf("list overrides: %v", err)
	}
	if len(overrides) != 1 || overrides[0].Cost != 99 {
		t.Fatalf("overrides: %+v", overrides)
	}
}

func TestHandleDeleteSeason(t *testing.T) {
	database := setupCostsTest(t)
	ctx := context.Background()

	result, err := database.ExecContext(ctx,
		"INSERT INTO cost_seasons (name, start_date, end_date, position) VALUES ('Summer', '2026-06-01', '2026-09-30', 1)")
	if err != nil {
		t.Fatalf("insert season: %v", err)
	}
	seasonID, _ := result.LastInsertId()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/costs/seasons/1", nil)
	req.SetPathValue("id", "1")
	req = withAdmin(req)
	recorder := httptest.NewRecorder()

	HandleDeleteSeason(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status: %d", recorder.Code)
	}

	seasons, err := database.Queries.ListCostSeasons(ctx)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	for _, s := range seasons {
		if s.ID == seasonID {
			t.Fatalf("season %d still present", seasonID)
		}
	}
}

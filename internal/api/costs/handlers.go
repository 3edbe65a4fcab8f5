// internal/api/costs/handlers.go
package costs

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	"tourdesk/internal/audit"
	appdb "tourdesk/internal/db"
)

// Handlers for the pricing tables behind the profitability report: cost
// seasons, special cost dates, the per-activity and per-guide cost tables,
// special guide rules, resource rates, and assignment overrides. Reads need
// a session; writes need the admin flag.

const idPathKey = "id"

var queries *appdb.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

func requireQueries(w http.ResponseWriter, r *http.Request) bool {
	if queries == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

func idFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(idPathKey), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// handleDelete centralizes the delete-by-id shape shared by every cost
// table.
func handleDelete(w http.ResponseWriter, r *http.Request, entity string, del func(context.Context, int64) error) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := del(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("entity", entity).Int64("id", id).Msg("Failed to delete cost row")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "delete", entity, id)
	w.WriteHeader(http.StatusNoContent)
}

type seasonRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Position  int64  `json:"position"`
}

type seasonResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Position  int64  `json:"position"`
}

// GET /api/v1/costs/seasons
func HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) || apiutil.RequireSession(w, r) == nil {
		return
	}

	seasons, err := queries.ListCostSeasons(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list cost seasons")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]seasonResponse, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonResponse{ID: s.ID, Name: s.Name, StartDate: s.StartDate, EndDate: s.EndDate, Position: s.Position})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/costs/seasons
func HandleCreateSeason(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	var req seasonRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	startDate, endDate, err := apiutil.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	season, err := queries.CreateCostSeason(r.Context(), appdb.CreateCostSeasonParams{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Position:  req.Position,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create cost season")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", "cost_season", season.ID)
	apiutil.WriteJSON(w, http.StatusCreated, seasonResponse{
		ID: season.ID, Name: season.Name, StartDate: season.StartDate, EndDate: season.EndDate, Position: season.Position,
	})
}

// DELETE /api/v1/costs/seasons/{id}
func HandleDeleteSeason(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "cost_season", queriesDeleteCostSeason)
}

type specialDateRequest struct {
	LocalDate string `json:"localDate"`
	Name      string `json:"name"`
}

// GET /api/v1/costs/special-dates
func HandleListSpecialDates(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) || apiutil.RequireSession(w, r) == nil {
		return
	}

	dates, err := queries.ListSpecialCostDates(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list special cost dates")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type item struct {
		ID        int64  `json:"id"`
		LocalDate string `json:"local_date"`
		Name      string `json:"name"`
	}
	items := make([]item, 0, len(dates))
	for _, d := range dates {
		items = append(items, item{ID: d.ID, LocalDate: d.LocalDate, Name: d.Name})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/costs/special-dates
func HandleCreateSpecialDate(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	var req specialDateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	localDate, err := apiutil.ParseDate("localDate", req.LocalDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := queries.CreateSpecialCostDate(r.Context(), appdb.CreateSpecialCostDateParams{
		LocalDate: localDate,
		Name:      req.Name,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create special cost date")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", "special_cost_date", date.ID)
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"id": date.ID, "local_date": date.LocalDate, "name": date.Name})
}

// DELETE /api/v1/costs/special-dates/{id}
func HandleDeleteSpecialDate(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "special_cost_date", queriesDeleteSpecialCostDate)
}

// Thin wrappers so handleDelete can take the bound methods before
// InitHandlers has run in tests.
func queriesDeleteCostSeason(ctx context.Context, id int64) error {
	return queries.DeleteCostSeason(ctx, id)
}

func queriesDeleteSpecialCostDate(ctx context.Context, id int64) error {
	return queries.DeleteSpecialCostDate(ctx, id)
}

type rateRequest struct {
	ResourceType string  `json:"resourceType"`
	ResourceID   int64   `json:"resourceId"`
	Rate         float64 `json:"rate"`
}

// GET /api/v1/costs/rates
func HandleListRates(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) || apiutil.RequireSession(w, r) == nil {
		return
	}

	rates, err := queries.ListResourceRates(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list resource rates")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type item struct {
		ID           int64   `json:"id"`
		ResourceType string  `json:"resource_type"`
		ResourceID   int64   `json:"resource_id"`
		Rate         float64 `json:"rate"`
	}
	items := make([]item, 0, len(rates))
	for _, rr := range rates {
		items = append(items, item{ID: rr.ID, ResourceType: rr.ResourceType, ResourceID: rr.ResourceID, Rate: rr.Rate})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// PUT /api/v1/costs/rates
func HandleUpsertRate(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	var req rateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.ResourceType {
	case appdb.ResourceEscort, appdb.ResourceHeadphone, appdb.ResourcePrinting:
	default:
		http.Error(w, "Unknown resource type", http.StatusBadRequest)
		return
	}
	if req.ResourceID <= 0 {
		http.Error(w, "resourceId is required", http.StatusBadRequest)
		return
	}

	err := queries.UpsertResourceRate(r.Context(), appdb.UpsertResourceRateParams{
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Rate:         req.Rate,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to upsert resource rate")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "upsert", req.ResourceType+"_rate", req.ResourceID)
	w.WriteHeader(http.StatusNoContent)
}

type overrideRequest struct {
	AssignmentType string  `json:"assignmentType"`
	AssignmentID   int64   `json:"assignmentId"`
	Cost           float64 `json:"cost"`
}

// PUT /api/v1/costs/overrides
func HandleUpsertOverride(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	var req overrideRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.AssignmentType {
	case appdb.ResourceGuide, appdb.ResourceEscort, appdb.ResourceHeadphone, appdb.ResourcePrinting:
	default:
		http.Error(w, "Unknown assignment type", http.StatusBadRequest)
		return
	}
	if req.AssignmentID <= 0 {
		http.Error(w, "assignmentId is required", http.StatusBadRequest)
		return
	}

	err := queries.UpsertAssignmentCostOverride(r.Context(), appdb.UpsertAssignmentCostOverrideParams{
		AssignmentType: req.AssignmentType,
		AssignmentID:   req.AssignmentID,
		Cost:           req.Cost,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to upsert assignment cost override")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "upsert", req.AssignmentType+"_cost_override", req.AssignmentID)
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/costs/rates/{type}/{id}
func HandleDeleteRate(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	resourceType := r.PathValue("type")
	switch resourceType {
	case appdb.ResourceEscort, appdb.ResourceHeadphone, appdb.ResourcePrinting:
	default:
		http.Error(w, "Unknown resource type", http.StatusBadRequest)
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := queries.DeleteResourceRate(r.Context(), resourceType, id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("resource_type", resourceType).Int64("id", id).Msg("Failed to delete resource rate")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "delete", resourceType+"_rate", id)
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/costs/overrides/{type}/{id}
func HandleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	assignmentType := r.PathValue("type")
	switch assignmentType {
	case appdb.ResourceGuide, appdb.ResourceEscort, appdb.ResourceHeadphone, appdb.ResourcePrinting:
	default:
		http.Error(w, "Unknown assignment type", http.StatusBadRequest)
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := queries.DeleteAssignmentCostOverride(r.Context(), assignmentType, id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("assignment_type", assignmentType).Int64("id", id).Msg("Failed to delete assignment cost override")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "delete", assignmentType+"_cost_override", id)
	w.WriteHeader(http.StatusNoContent)
}

// internal/api/costs/guide_costs.go
package costs

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	"tourdesk/internal/audit"
	appdb "tourdesk/internal/db"
)

// Handlers for the guide cost tables: the legacy flat per-activity rates,
// the default seasonal/special-date tables, their guide-specific variants,
// and the special guide rules that gate them.

// handleCreateCost centralizes the create shape shared by the cost tables.
func handleCreateCost(w http.ResponseWriter, r *http.Request, entity string, create func(context.Context) (int64, error)) {
	if !requireQueries(w, r) {
		return
	}
	principal := apiutil.RequireAdmin(w, r)
	if principal == nil {
		return
	}

	id, err := create(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("entity", entity).Msg("Failed to create cost row")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", entity, id)
	apiutil.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type activityCostRequest struct {
	ActivityID int64   `json:"activityId"`
	GuideID    *int64  `json:"guideId"` // null for the global legacy rate
	Cost       float64 `json:"cost"`
}

// GET /api/v1/costs/activity-costs
func HandleListActivityCosts(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) || apiutil.RequireSession(w, r) == nil {
		return
	}

	costs, err := queries.ListGuideActivityCosts(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list activity costs")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type item struct {
		ID         int64   `json:"id"`
		ActivityID int64   `json:"activity_id"`
		GuideID    *int64  `json:"guide_id"`
		Cost       float64 `json:"cost"`
	}
	items := make([]item, 0, len(costs))
	for _, c := range costs {
		row := item{ID: c.ID, ActivityID: c.ActivityID, Cost: c.Cost}
		if c.GuideID.Valid {
			id := c.GuideID.Int64
			row.GuideID = &id
		}
		items = append(items, row)
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/costs/activity-costs
func HandleCreateActivityCost(w http.ResponseWriter, r *http.Request) {
	var req activityCostRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ActivityID <= 0 {
		http.Error(w, "activityId is required", http.StatusBadRequest)
		return
	}

	handleCreateCost(w, r, "guide_activity_cost", func(ctx context.Context) (int64, error) {
		return queries.CreateGuideActivityCost(ctx, appdb.CreateGuideActivityCostParams{
			ActivityID: req.ActivityID,
			GuideID:    req.GuideID,
			Cost:       req.Cost,
		})
	})
}

// DELETE /api/v1/costs/activity-costs/{id}
func HandleDeleteActivityCost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "guide_activity_cost", func(ctx context.Context, id int64) error {
		return queries.DeleteGuideActivityCost(ctx, id)
	})
}

type seasonCostRequest struct {
	ActivityID int64   `json:"activityId"`
	SeasonID   int64   `json:"seasonId"`
	GuideID    int64   `json:"guideId"` // 0 for the default table
	Cost       float64 `json:"cost"`
}

// POST /api/v1/costs/season-costs
func HandleCreateSeasonCost(w http.ResponseWriter, r *http.Request) {
	var req seasonCostRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ActivityID <= 0 || req.SeasonID <= 0 {
		http.Error(w, "activityId and seasonId are required", http.StatusBadRequest)
		return
	}

	if req.GuideID > 0 {
		handleCreateCost(w, r, "guide_season_cost", func(ctx context.Context) (int64, error) {
			return queries.CreateGuideSeasonCost(ctx, appdb.CreateGuideSeasonCostParams{
				GuideID:    req.GuideID,
				ActivityID: req.ActivityID,
				SeasonID:   req.SeasonID,
				Cost:       req.Cost,
			})
		})
		return
	}

	handleCreateCost(w, r, "activity_season_cost", func(ctx context.Context) (int64, error) {
		return queries.CreateActivitySeasonCost(ctx, appdb.CreateActivitySeasonCostParams{
			ActivityID: req.ActivityID,
			SeasonID:   req.SeasonID,
			Cost:       req.Cost,
		})
	})
}

// DELETE /api/v1/costs/season-costs/{id}
func HandleDeleteSeasonCost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "activity_season_cost", func(ctx context.Context, id int64) error {
		return queries.DeleteActivitySeasonCost(ctx, id)
	})
}

// DELETE /api/v1/costs/guide-season-costs/{id}
func HandleDeleteGuideSeasonCost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "guide_season_cost", func(ctx context.Context, id int64) error {
		return queries.DeleteGuideSeasonCost(ctx, id)
	})
}

type specialDateCostRequest struct {
	ActivityID    int64   `json:"activityId"`
	SpecialDateID int64   `json:"specialDateId"`
	GuideID       int64   `json:"guideId"` // 0 for the default table
	Cost          float64 `json:"cost"`
}

// POST /api/v1/costs/special-date-costs
func HandleCreateSpecialDateCost(w http.ResponseWriter, r *http.Request) {
	var req specialDateCostRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ActivityID <= 0 || req.SpecialDateID <= 0 {
		http.Error(w, "activityId and specialDateId are required", http.StatusBadRequest)
		return
	}

	if req.GuideID > 0 {
		handleCreateCost(w, r, "guide_special_date_cost", func(ctx context.Context) (int64, error) {
			return queries.CreateGuideSpecialDateCost(ctx, appdb.CreateGuideSpecialDateCostParams{
				GuideID:       req.GuideID,
				ActivityID:    req.ActivityID,
				SpecialDateID: req.SpecialDateID,
				Cost:          req.Cost,
			})
		})
		return
	}

	handleCreateCost(w, r, "activity_special_date_cost", func(ctx context.Context) (int64, error) {
		return queries.CreateActivitySpecialDateCost(ctx, appdb.CreateActivitySpecialDateCostParams{
			ActivityID:    req.ActivityID,
			SpecialDateID: req.SpecialDateID,
			Cost:          req.Cost,
		})
	})
}

// DELETE /api/v1/costs/special-date-costs/{id}
func HandleDeleteSpecialDateCost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "activity_special_date_cost", func(ctx context.Context, id int64) error {
		return queries.DeleteActivitySpecialDateCost(ctx, id)
	})
}

// DELETE /api/v1/costs/guide-special-date-costs/{id}
func HandleDeleteGuideSpecialDateCost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "guide_special_date_cost", func(ctx context.Context, id int64) error {
		return queries.DeleteGuideSpecialDateCost(ctx, id)
	})
}

type specialGuideRuleRequest struct {
	GuideID    int64 `json:"guideId"`
	ActivityID int64 `json:"activityId"`
}

// GET /api/v1/costs/special-guide-rules
func HandleListSpecialGuideRules(w http.ResponseWriter, r *http.Request) {
	if !requireQueries(w, r) || apiutil.RequireSession(w, r) == nil {
		return
	}

	rules, err := queries.ListSpecialGuideRules(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list special guide rules")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type item struct {
		ID         int64 `json:"id"`
		GuideID    int64 `json:"guide_id"`
		ActivityID int64 `json:"activity_id"`
	}
	items := make([]item, 0, len(rules))
	for _, rule := range rules {
		items = append(items, item{ID: rule.ID, GuideID: rule.GuideID, ActivityID: rule.ActivityID})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/costs/special-guide-rules
func HandleCreateSpecialGuideRule(w http.ResponseWriter, r *http.Request) {
	var req specialGuideRuleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.GuideID <= 0 || req.ActivityID <= 0 {
		http.Error(w, "guideId and activityId are required", http.StatusBadRequest)
		return
	}

	handleCreateCost(w, r, "special_guide_rule", func(ctx context.Context) (int64, error) {
		return queries.CreateSpecialGuideRule(ctx, appdb.CreateSpecialGuideRuleParams{
			GuideID:    req.GuideID,
			ActivityID: req.ActivityID,
		})
	})
}

// DELETE /api/v1/costs/special-guide-rules/{id}
func HandleDeleteSpecialGuideRule(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "special_guide_rule", func(ctx context.Context, id int64) error {
		return queries.DeleteSpecialGuideRule(ctx, id)
	})
}

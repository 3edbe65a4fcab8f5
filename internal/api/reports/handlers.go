// internal/api/reports/handlers.go
package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	appdb "tourdesk/internal/db"
	engine "tourdesk/internal/reports"
)

const (
	reportQueryTimeout = 30 * time.Second
	startDateQueryKey  = "start_date"
	endDateQueryKey    = "end_date"
	groupByQueryKey    = "group_by"
)

var (
	queries  *appdb.Queries
	pageSize int64
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, reportPageSize int64) {
	if database == nil {
		return
	}
	queries = database.Queries
	pageSize = reportPageSize
}

// GET /api/v1/reports/profitability
func HandleProfitabilityReport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireSession(w, r) == nil {
		return
	}

	startDate, endDate, err := apiutil.ParseDateRange(
		r.URL.Query().Get(startDateQueryKey),
		r.URL.Query().Get(endDateQueryKey),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	groupBy := r.URL.Query().Get(groupByQueryKey)
	if groupBy == "" {
		groupBy = engine.GroupByActivity
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportQueryTimeout)
	defer cancel()

	report, err := engine.Generate(ctx, queries, engine.Params{
		StartDate: startDate,
		EndDate:   endDate,
		GroupBy:   groupBy,
		PageSize:  pageSize,
	})
	if err != nil {
		logger.Error().Err(err).
			Str("start_date", startDate).
			Str("end_date", endDate).
			Str("group_by", groupBy).
			Msg("Failed to generate profitability report")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, report); err != nil {
		logger.Error().Err(err).Msg("Failed to write report response")
	}
}

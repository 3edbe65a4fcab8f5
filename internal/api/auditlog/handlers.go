// internal/api/auditlog/handlers.go
package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	appdb "tourdesk/internal/db"
)

const defaultListLimit = 100

var queries *appdb.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

type entryResponse struct {
	ID        string `json:"id"`
	ActorID   int64  `json:"actor_id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	CreatedAt string `json:"created_at"`
}

// GET /api/v1/audit
func HandleListEntries(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	entity := r.URL.Query().Get("entity")
	if entity == "" {
		http.Error(w, "entity is required", http.StatusBadRequest)
		return
	}
	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := queries.ListAuditEntries(r.Context(), entity, limit)
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Failed to list audit entries")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// internal/audit/audit.go
package audit

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tourdesk/internal/db"
)

// Record appends an entry to the audit trail for a mutating back-office
// action. Audit failures are logged but never fail the request that caused
// them.
func Record(ctx context.Context, q *db.Queries, actorID int64, action, entity string, entityID int64) {
	if q == nil {
		return
	}

	err := q.InsertAuditEntry(ctx, db.InsertAuditEntryParams{
		ID:       uuid.New().String(),
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: strconv.FormatInt(entityID, 10),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("action", action).
			Str("entity", entity).
			Int64("entity_id", entityID).
			Msg("Failed to write audit entry")
	}
}

// internal/db/queries_audit.go
package db

import "context"

type InsertAuditEntryParams struct {
	ID       string
	ActorID  int64
	Action   string
	Entity   string
	EntityID string
}

func (q *Queries) InsertAuditEntry(ctx context.Context, p InsertAuditEntryParams) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO audit_log (id, actor_id, action, entity, entity_id)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ActorID, p.Action, p.Entity, p.EntityID)
	return err
}

func (q *Queries) ListAuditEntries(ctx context.Context, entity string, limit int64) ([]AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, actor_id, action, entity, entity_id, created_at
		FROM audit_log WHERE entity = ? ORDER BY created_at DESC LIMIT ?`, entity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

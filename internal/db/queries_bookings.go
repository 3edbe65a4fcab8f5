// internal/db/queries_bookings.go
package db

import "context"

func (q *Queries) GetAvailability(ctx context.Context, id int64) (Availability, error) {
	var s Availability
	err := q.db.QueryRowContext(ctx, `SELECT id, activity_id, local_date, local_time, vacancy_sold, created_at
		FROM availabilities WHERE id = ?`, id).
		Scan(&s.ID, &s.ActivityID, &s.LocalDate, &s.LocalTime, &s.VacancySold, &s.CreatedAt)
	return s, err
}

func (q *Queries) GetActivity(ctx context.Context, id int64) (Activity, error) {
	var a Activity
	err := q.db.QueryRowContext(ctx, `SELECT id, title, created_at FROM activities WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.CreatedAt)
	return a, err
}

// internal/db/queries_reports.go
package db

import (
	"context"
)

// Read queries consumed by the profitability report loader. The ranged reads
// are paged; the cost/rate/assignment tables are small fixed sets read whole.

type ListBookingsInRangeParams struct {
	StartDate string
	EndDate   string
	Statuses  []string
	Limit     int64
	Offset    int64
}

func (q *Queries) ListBookingsInRange(ctx context.Context, p ListBookingsInRangeParams) ([]ActivityBooking, error) {
	query := `SELECT id, booking_ref, availability_id, activity_id, travel_date, status,
		total_price_gross, total_price_net, pax, created_at
		FROM activity_bookings
		WHERE travel_date >= ? AND travel_date <= ?
		AND status IN (` + inPlaceholders(len(p.Statuses)) + `)
		ORDER BY id LIMIT ? OFFSET ?`

	args := []any{p.StartDate, p.EndDate}
	for _, s := range p.Statuses {
		args = append(args, s)
	}
	args = append(args, p.Limit, p.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []ActivityBooking
	for rows.Next() {
		var b ActivityBooking
		if err := rows.Scan(
			&b.ID, &b.BookingRef, &b.AvailabilityID, &b.ActivityID, &b.TravelDate,
			&b.Status, &b.TotalPriceGross, &b.TotalPriceNet, &b.Pax, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

type ListAvailabilitiesInRangeParams struct {
	StartDate string
	EndDate   string
	Limit     int64
	Offset    int64
}

func (q *Queries) ListAvailabilitiesInRange(ctx context.Context, p ListAvailabilitiesInRangeParams) ([]Availability, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, activity_id, local_date, local_time, vacancy_sold, created_at
		FROM availabilities
		WHERE local_date >= ? AND local_date <= ?
		ORDER BY id LIMIT ? OFFSET ?`,
		p.StartDate, p.EndDate, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []Availability
	for rows.Next() {
		var s Availability
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.LocalDate, &s.LocalTime, &s.VacancySold, &s.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (q *Queries) ListActivities(ctx context.Context) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, title, created_at FROM activities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (q *Queries) ListGuideAssignments(ctx context.Context) ([]GuideAssignment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, guide_id, availability_id FROM guide_assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []GuideAssignment
	for rows.Next() {
		var a GuideAssignment
		if err := rows.Scan(&a.ID, &a.GuideID, &a.AvailabilityID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (q *Queries) ListEscortAssignments(ctx context.Context) ([]EscortAssignment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, escort_id, availability_id FROM escort_assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []EscortAssignment
	for rows.Next() {
		var a EscortAssignment
		if err := rows.Scan(&a.ID, &a.EscortID, &a.AvailabilityID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (q *Queries) ListHeadphoneAssignments(ctx context.Context) ([]HeadphoneAssignment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, headphone_contact_id, availability_id FROM headphone_assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []HeadphoneAssignment
	for rows.Next() {
		var a HeadphoneAssignment
		if err := rows.Scan(&a.ID, &a.ContactID, &a.AvailabilityID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (q *Queries) ListPrintingAssignments(ctx context.Context) ([]PrintingAssignment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, printing_contact_id, availability_id FROM printing_assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []PrintingAssignment
	for rows.Next() {
		var a PrintingAssignment
		if err := rows.Scan(&a.ID, &a.ContactID, &a.AvailabilityID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (q *Queries) ListServiceGroupMembers(ctx context.Context) ([]ServiceGroupMember, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, service_group_id, guide_assignment_id, is_primary
		FROM service_group_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []ServiceGroupMember
	for rows.Next() {
		var m ServiceGroupMember
		if err := rows.Scan(&m.ID, &m.ServiceGroupID, &m.GuideAssignmentID, &m.IsPrimary); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListCostSeasons returns seasons in their configured order. The report
// resolver depends on this order for overlapping-season matches.
func (q *Queries) ListCostSeasons(ctx context.Context) ([]CostSeason, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, start_date, end_date, position
		FROM cost_seasons ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []CostSeason
	for rows.Next() {
		var s CostSeason
		if err := rows.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.Position); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (q *Queries) ListSpecialCostDates(ctx context.Context) ([]SpecialCostDate, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, local_date, name FROM special_cost_dates ORDER BY local_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []SpecialCostDate
	for rows.Next() {
		var d SpecialCostDate
		if err := rows.Scan(&d.ID, &d.LocalDate, &d.Name); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (q *Queries) ListGuideActivityCosts(ctx context.Context) ([]GuideActivityCost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, activity_id, guide_id, cost FROM guide_activity_costs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []GuideActivityCost
	for rows.Next() {
		var c GuideActivityCost
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.GuideID, &c.Cost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (q *Queries) ListActivitySeasonCosts(ctx context.Context) ([]ActivitySeasonCost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, activity_id, season_id, cost FROM activity_season_costs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []ActivitySeasonCost
	for rows.Next() {
		var c ActivitySeasonCost
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.SeasonID, &c.Cost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (q *Queries) ListActivitySpecialDateCosts(ctx context.Context) ([]ActivitySpecialDateCost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, activity_id, special_date_id, cost FROM activity_special_date_costs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []ActivitySpecialDateCost
	for rows.Next() {
		var c ActivitySpecialDateCost
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.SpecialDateID, &c.Cost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (q *Queries) ListGuideSeasonCosts(ctx context.Context) ([]GuideSeasonCost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, guide_id, activity_id, season_id, cost FROM guide_season_costs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []GuideSeasonCost
	for rows.Next() {
		var c GuideSeasonCost
		if err := rows.Scan(&c.ID, &c.GuideID, &c.ActivityID, &c.SeasonID, &c.Cost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (q *Queries) ListGuideSpecialDateCosts(ctx context.Context) ([]GuideSpecialDateCost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, guide_id, activity_id, special_date_id, cost FROM guide_special_date_costs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []GuideSpecialDateCost
	for rows.Next() {
		var c GuideSpecialDateCost
		if err := rows.Scan(&c.ID, &c.GuideID, &c.ActivityID, &c.SpecialDateID, &c.Cost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (q *Queries) ListSpecialGuideRules(ctx context.Context) ([]SpecialGuideRule, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, guide_id, activity_id FROM special_guide_rules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []SpecialGuideRule
	for rows.Next() {
		var r SpecialGuideRule
		if err := rows.Scan(&r.ID, &r.GuideID, &r.ActivityID); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (q *Queries) ListResourceRates(ctx context.Context) ([]ResourceRate, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, resource_type, resource_id, rate FROM resource_rates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []ResourceRate
	for rows.Next() {
		var r ResourceRate
		if err := rows.Scan(&r.ID, &r.ResourceType, &r.ResourceID, &r.Rate); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

func (q *Queries) ListAssignmentCostOverrides(ctx context.Context) ([]AssignmentCostOverride, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, assignment_type, assignment_id, cost FROM assignment_cost_overrides ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []AssignmentCostOverride
	for rows.Next() {
		var o AssignmentCostOverride
		if err := rows.Scan(&o.ID, &o.AssignmentType, &o.AssignmentID, &o.Cost); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

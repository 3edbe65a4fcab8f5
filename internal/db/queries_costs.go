// internal/db/queries_costs.go
package db

import "context"

// Writes for the pricing tables feeding the profitability report.

type CreateCostSeasonParams struct {
	Name      string
	StartDate string
	EndDate   string
	Position  int64
}

func (q *Queries) CreateCostSeason(ctx context.Context, p CreateCostSeasonParams) (CostSeason, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO cost_seasons (name, start_date, end_date, position)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.StartDate, p.EndDate, p.Position)
	if err != nil {
		return CostSeason{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return CostSeason{}, err
	}
	return CostSeason{ID: id, Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate, Position: p.Position}, nil
}

func (q *Queries) DeleteCostSeason(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM cost_seasons WHERE id = ?`, id)
	return err
}

type CreateSpecialCostDateParams struct {
	LocalDate string
	Name      string
}

func (q *Queries) CreateSpecialCostDate(ctx context.Context, p CreateSpecialCostDateParams) (SpecialCostDate, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO special_cost_dates (local_date, name) VALUES (?, ?)`,
		p.LocalDate, p.Name)
	if err != nil {
		return SpecialCostDate{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return SpecialCostDate{}, err
	}
	return SpecialCostDate{ID: id, LocalDate: p.LocalDate, Name: p.Name}, nil
}

func (q *Queries) DeleteSpecialCostDate(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM special_cost_dates WHERE id = ?`, id)
	return err
}

type CreateGuideActivityCostParams struct {
	ActivityID int64
	GuideID    *int64 // nil for the global legacy rate
	Cost       float64
}

func (q *Queries) CreateGuideActivityCost(ctx context.Context, p CreateGuideActivityCostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO guide_activity_costs (activity_id, guide_id, cost)
		VALUES (?, ?, ?)`,
		p.ActivityID, p.GuideID, p.Cost)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteGuideActivityCost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM guide_activity_costs WHERE id = ?`, id)
	return err
}

type CreateActivitySeasonCostParams struct {
	ActivityID int64
	SeasonID   int64
	Cost       float64
}

func (q *Queries) CreateActivitySeasonCost(ctx context.Context, p CreateActivitySeasonCostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO activity_season_costs (activity_id, season_id, cost)
		VALUES (?, ?, ?)`,
		p.ActivityID, p.SeasonID, p.Cost)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteActivitySeasonCost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM activity_season_costs WHERE id = ?`, id)
	return err
}

type CreateActivitySpecialDateCostParams struct {
	ActivityID    int64
	SpecialDateID int64
	Cost          float64
}

func (q *Queries) CreateActivitySpecialDateCost(ctx context.Context, p CreateActivitySpecialDateCostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO activity_special_date_costs (activity_id, special_date_id, cost)
		VALUES (?, ?, ?)`,
		p.ActivityID, p.SpecialDateID, p.Cost)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteActivitySpecialDateCost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM activity_special_date_costs WHERE id = ?`, id)
	return err
}

type CreateGuideSeasonCostParams struct {
	GuideID    int64
	ActivityID int64
	SeasonID   int64
	Cost       float64
}

func (q *Queries) CreateGuideSeasonCost(ctx context.Context, p CreateGuideSeasonCostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO guide_season_costs (guide_id, activity_id, season_id, cost)
		VALUES (?, ?, ?, ?)`,
		p.GuideID, p.ActivityID, p.SeasonID, p.Cost)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteGuideSeasonCost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM guide_season_costs WHERE id = ?`, id)
	return err
}

type CreateGuideSpecialDateCostParams struct {
	GuideID       int64
	ActivityID    int64
	SpecialDateID int64
	Cost          float64
}

func (q *Queries) CreateGuideSpecialDateCost(ctx context.Context, p CreateGuideSpecialDateCostParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO guide_special_date_costs (guide_id, activity_id, special_date_id, cost)
		VALUES (?, ?, ?, ?)`,
		p.GuideID, p.ActivityID, p.SpecialDateID, p.Cost)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteGuideSpecialDateCost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM guide_special_date_costs WHERE id = ?`, id)
	return err
}

type CreateSpecialGuideRuleParams struct {
	GuideID    int64
	ActivityID int64
}

func (q *Queries) CreateSpecialGuideRule(ctx context.Context, p CreateSpecialGuideRuleParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO special_guide_rules (guide_id, activity_id) VALUES (?, ?)`,
		p.GuideID, p.ActivityID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteSpecialGuideRule(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM special_guide_rules WHERE id = ?`, id)
	return err
}

type UpsertResourceRateParams struct {
	ResourceType string
	ResourceID   int64
	Rate         float64
}

func (q *Queries) UpsertResourceRate(ctx context.Context, p UpsertResourceRateParams) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO resource_rates (resource_type, resource_id, rate)
		VALUES (?, ?, ?)
		ON CONFLICT (resource_type, resource_id) DO UPDATE SET rate = excluded.rate`,
		p.ResourceType, p.ResourceID, p.Rate)
	return err
}

func (q *Queries) DeleteResourceRate(ctx context.Context, resourceType string, resourceID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM resource_rates WHERE resource_type = ? AND resource_id = ?`,
		resourceType, resourceID)
	return err
}

type UpsertAssignmentCostOverrideParams struct {
	AssignmentType string
	AssignmentID   int64
	Cost           float64
}

func (q *Queries) UpsertAssignmentCostOverride(ctx context.Context, p UpsertAssignmentCostOverrideParams) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO assignment_cost_overrides (assignment_type, assignment_id, cost)
		VALUES (?, ?, ?)
		ON CONFLICT (assignment_type, assignment_id) DO UPDATE SET cost = excluded.cost`,
		p.AssignmentType, p.AssignmentID, p.Cost)
	return err
}

func (q *Queries) DeleteAssignmentCostOverride(ctx context.Context, assignmentType string, assignmentID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM assignment_cost_overrides WHERE assignment_type = ? AND assignment_id = ?`,
		assignmentType, assignmentID)
	return err
}

// internal/db/queries_staffing.go
package db

import (
	"context"
	"fmt"
)

// Staffing resource reads and writes. Guides carry the paid_in_cash flag;
// escorts, headphone contacts and printing contacts share the Contact shape.

const (
	ResourceGuide     = "guide"
	ResourceEscort    = "escort"
	ResourceHeadphone = "headphone"
	ResourcePrinting  = "printing"
)

// contactTable maps a non-guide resource type to its table. Resource types
// are validated here so table names never come from request input directly.
func contactTable(resourceType string) (string, error) {
	switch resourceType {
	case ResourceEscort:
		return "escorts", nil
	case ResourceHeadphone:
		return "headphone_contacts", nil
	case ResourcePrinting:
		return "printing_contacts", nil
	default:
		return "", fmt.Errorf("unknown resource type: %s", resourceType)
	}
}

func (q *Queries) ListGuides(ctx context.Context) ([]Guide, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, email, phone, paid_in_cash, active, created_at
		FROM guides ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []Guide
	for rows.Next() {
		var g Guide
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.PaidInCash, &g.Active, &g.CreatedAt); err != nil {
			return nil, err
		}
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

func (q *Queries) GetGuide(ctx context.Context, id int64) (Guide, error) {
	var g Guide
	err := q.db.QueryRowContext(ctx, `SELECT id, name, email, phone, paid_in_cash, active, created_at
		FROM guides WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.PaidInCash, &g.Active, &g.CreatedAt)
	return g, err
}

type CreateGuideParams struct {
	Name       string
	Email      string
	Phone      string
	PaidInCash bool
}

func (q *Queries) CreateGuide(ctx context.Context, p CreateGuideParams) (Guide, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO guides (name, email, phone, paid_in_cash)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.Email, p.Phone, p.PaidInCash)
	if err != nil {
		return Guide{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Guide{}, err
	}
	return q.GetGuide(ctx, id)
}

type UpdateGuideParams struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	PaidInCash bool
	Active     bool
}

func (q *Queries) UpdateGuide(ctx context.Context, p UpdateGuideParams) (Guide, error) {
	_, err := q.db.ExecContext(ctx, `UPDATE guides
		SET name = ?, email = ?, phone = ?, paid_in_cash = ?, active = ?
		WHERE id = ?`,
		p.Name, p.Email, p.Phone, p.PaidInCash, p.Active, p.ID)
	if err != nil {
		return Guide{}, err
	}
	return q.GetGuide(ctx, p.ID)
}

func (q *Queries) DeleteGuide(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM guides WHERE id = ?`, id)
	return err
}

func (q *Queries) ListContacts(ctx context.Context, resourceType string) ([]Contact, error) {
	table, err := contactTable(resourceType)
	if err != nil {
		return nil, err
	}

	rows, err := q.db.QueryContext(ctx, `SELECT id, name, email, phone, active, created_at
		FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (q *Queries) GetContact(ctx context.Context, resourceType string, id int64) (Contact, error) {
	table, err := contactTable(resourceType)
	if err != nil {
		return Contact{}, err
	}

	var c Contact
	err = q.db.QueryRowContext(ctx, `SELECT id, name, email, phone, active, created_at
		FROM `+table+` WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Active, &c.CreatedAt)
	return c, err
}

type CreateContactParams struct {
	ResourceType string
	Name         string
	Email        string
	Phone        string
}

func (q *Queries) CreateContact(ctx context.Context, p CreateContactParams) (Contact, error) {
	table, err := contactTable(p.ResourceType)
	if err != nil {
		return Contact{}, err
	}

	result, err := q.db.ExecContext(ctx, `INSERT INTO `+table+` (name, email, phone) VALUES (?, ?, ?)`,
		p.Name, p.Email, p.Phone)
	if err != nil {
		return Contact{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Contact{}, err
	}
	return q.GetContact(ctx, p.ResourceType, id)
}

type UpdateContactParams struct {
	ResourceType string
	ID           int64
	Name         string
	Email        string
	Phone        string
	Active       bool
}

func (q *Queries) UpdateContact(ctx context.Context, p UpdateContactParams) (Contact, error) {
	table, err := contactTable(p.ResourceType)
	if err != nil {
		return Contact{}, err
	}

	_, err = q.db.ExecContext(ctx, `UPDATE `+table+` SET name = ?, email = ?, phone = ?, active = ? WHERE id = ?`,
		p.Name, p.Email, p.Phone, p.Active, p.ID)
	if err != nil {
		return Contact{}, err
	}
	return q.GetContact(ctx, p.ResourceType, p.ID)
}

func (q *Queries) DeleteContact(ctx context.Context, resourceType string, id int64) error {
	table, err := contactTable(resourceType)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	return err
}

// assignmentTable maps a resource type to its assignment table and resource
// id column.
func assignmentTable(resourceType string) (table, column string, err error) {
	switch resourceType {
	case ResourceGuide:
		return "guide_assignments", "guide_id", nil
	case ResourceEscort:
		return "escort_assignments", "escort_id", nil
	case ResourceHeadphone:
		return "headphone_assignments", "headphone_contact_id", nil
	case ResourcePrinting:
		return "printing_assignments", "printing_contact_id", nil
	default:
		return "", "", fmt.Errorf("unknown resource type: %s", resourceType)
	}
}

type CreateAssignmentParams struct {
	ResourceType   string
	ResourceID     int64
	AvailabilityID int64
}

// CreateAssignment links a staffing resource to a slot and returns the new
// assignment id.
func (q *Queries) CreateAssignment(ctx context.Context, p CreateAssignmentParams) (int64, error) {
	table, column, err := assignmentTable(p.ResourceType)
	if err != nil {
		return 0, err
	}

	result, err := q.db.ExecContext(ctx, `INSERT INTO `+table+` (`+column+`, availability_id) VALUES (?, ?)`,
		p.ResourceID, p.AvailabilityID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) DeleteAssignment(ctx context.Context, resourceType string, id int64) error {
	table, _, err := assignmentTable(resourceType)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	return err
}

type CreateServiceGroupParams struct {
	GuideID           int64
	MemberAssignments []int64
	PrimaryAssignment int64
}

// CreateServiceGroup bundles guide assignments under one group. The primary
// assignment carries the group's single calculated cost.
func (q *Queries) CreateServiceGroup(ctx context.Context, p CreateServiceGroupParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO service_groups (guide_id) VALUES (?)`, p.GuideID)
	if err != nil {
		return 0, err
	}
	groupID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, assignmentID := range p.MemberAssignments {
		_, err := q.db.ExecContext(ctx, `INSERT INTO service_group_members
			(service_group_id, guide_assignment_id, is_primary) VALUES (?, ?, ?)`,
			groupID, assignmentID, assignmentID == p.PrimaryAssignment)
		if err != nil {
			return 0, err
		}
	}
	return groupID, nil
}

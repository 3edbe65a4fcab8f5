// internal/db/queries_partners.go
package db

import "context"

func (q *Queries) ListPartners(ctx context.Context) ([]Partner, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, email, phone, created_at FROM partners ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (q *Queries) GetPartner(ctx context.Context, id int64) (Partner, error) {
	var p Partner
	err := q.db.QueryRowContext(ctx, `SELECT id, name, email, phone, created_at FROM partners WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt)
	return p, err
}

type CreatePartnerParams struct {
	Name  string
	Email string
	Phone string
}

func (q *Queries) CreatePartner(ctx context.Context, p CreatePartnerParams) (Partner, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO partners (name, email, phone) VALUES (?, ?, ?)`,
		p.Name, p.Email, p.Phone)
	if err != nil {
		return Partner{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Partner{}, err
	}
	return q.GetPartner(ctx, id)
}

func (q *Queries) DeletePartner(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id)
	return err
}

type ListVoucherExchangesParams struct {
	PartnerID int64 // 0 means all partners
	StartDate string
	EndDate   string
}

func (q *Queries) ListVoucherExchanges(ctx context.Context, p ListVoucherExchangesParams) ([]VoucherExchange, error) {
	query := `SELECT id, partner_id, reference, amount, exchanged_on, created_at
		FROM voucher_exchanges
		WHERE exchanged_on >= ? AND exchanged_on <= ?`
	args := []any{p.StartDate, p.EndDate}
	if p.PartnerID != 0 {
		query += ` AND partner_id = ?`
		args = append(args, p.PartnerID)
	}
	query += ` ORDER BY exchanged_on, id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []VoucherExchange
	for rows.Next() {
		var v VoucherExchange
		if err := rows.Scan(&v.ID, &v.PartnerID, &v.Reference, &v.Amount, &v.ExchangedOn, &v.CreatedAt); err != nil {
			return nil, err
		}
		exchanges = append(exchanges, v)
	}
	return exchanges, rows.Err()
}

type CreateVoucherExchangeParams struct {
	PartnerID   int64
	Reference   string
	Amount      float64
	ExchangedOn string
}

func (q *Queries) CreateVoucherExchange(ctx context.Context, p CreateVoucherExchangeParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO voucher_exchanges (partner_id, reference, amount, exchanged_on)
		VALUES (?, ?, ?, ?)`,
		p.PartnerID, p.Reference, p.Amount, p.ExchangedOn)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

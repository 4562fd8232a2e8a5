package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"droneVideoOps/models"
)

// List returns every order, most recently created first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

// ListByClient returns all orders placed by a client account, newest first.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE client_id = ? ORDER BY created_at DESC, id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

// ListOrdersParams represents filters and keyset pagination for ListPage (admin).
type ListOrdersParams struct {
	Statuses     []models.OrderStatus
	City         string
	ClientID     *int64
	PageSize     int
	AfterCreated time.Time // keyset cursor: created_at of the last row of the previous page
	AfterID      string    // keyset cursor: id of the last row of the previous page
}

// ListPage returns orders matching filters ordered by created_at desc, id desc.
func (r *OrderRepository) ListPage(ctx context.Context, p ListOrdersParams) ([]models.Order, error) {
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var where []string
	var args []any
	if len(p.Statuses) > 0 {
		placeholders := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if c := strings.TrimSpace(p.City); c != "" {
		where = append(where, "city = ? COLLATE NOCASE")
		args = append(args, c)
	}
	if p.ClientID != nil {
		where = append(where, "client_id = ?")
		args = append(args, *p.ClientID)
	}
	if !p.AfterCreated.IsZero() && p.AfterID != "" {
		after := formatTime(p.AfterCreated)
		where = append(where, "(created_at < ? OR (created_at = ? AND id < ?))")
		args = append(args, after, after, p.AfterID)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, p.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

func scanOrderRows(rows *sql.Rows) ([]models.Order, error) {
	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const orderColumns = `id, order_code, client_id, client_name, client_phone, city, location, shoot_date, package, amount, requirements, reference_link, drive_link, status, created_at, updated_at`

// OrderRepository is the core repository for Order entities.
// It handles basic CRUD operations; list queries live in order_query.go.
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order. ID is generated when empty and status defaults to 'pending'.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var clientID any
	if o.ClientID != nil {
		clientID = *o.ClientID
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.OrderID, clientID, o.ClientName, o.ClientPhone, o.City, o.Location, o.ShootDate,
		string(o.Package), o.Amount, o.Requirements, o.ReferenceLink, o.DriveLink, string(o.Status),
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
	if err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("created order not found: id=%s", o.ID)
	}
	return created, nil
}

// GetByID fetches an order by its storage ID. It returns nil, nil when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
}

// GetByCode fetches an order by its human-readable ORD code.
func (r *OrderRepository) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_code = ?`, code))
}

// Update writes every mutable field of an order. Status is not touched; use TransitionStatus.
func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	if o == nil {
		return errors.New("order is nil")
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET client_name = ?, client_phone = ?, city = ?, location = ?, shoot_date = ?, package = ?, amount = ?, requirements = ?, reference_link = ?, drive_link = ?, updated_at = ? WHERE id = ?`,
		o.ClientName, o.ClientPhone, o.City, o.Location, o.ShootDate, string(o.Package), o.Amount,
		o.Requirements, o.ReferenceLink, o.DriveLink, formatTime(o.UpdatedAt), o.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// TransitionStatus moves an order from one status to another only if it still has the
// expected status. It returns ErrStatusConflict when the row was changed in between.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), formatTime(at), id, string(from))
	if err != nil {
		return err
	}
	if err := checkAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStatusConflict
		}
		return err
	}
	return nil
}

// Delete removes an order by ID. Child rows go with it through ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var clientID sql.NullInt64
	var pkg, status, createdAt, updatedAt string
	err := row.Scan(&o.ID, &o.OrderID, &clientID, &o.ClientName, &o.ClientPhone, &o.City, &o.Location,
		&o.ShootDate, &pkg, &o.Amount, &o.Requirements, &o.ReferenceLink, &o.DriveLink, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if clientID.Valid {
		v := clientID.Int64
		o.ClientID = &v
	}
	o.Package = models.PackageType(pkg)
	o.Status = models.OrderStatus(status)
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

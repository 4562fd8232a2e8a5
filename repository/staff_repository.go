package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const staffColumns = `id, code, role, name, phone, city, username, active, created_at`

// StaffRepository stores pilots and editors.
type StaffRepository struct {
	db DBTX
}

func NewStaffRepository(db DBTX) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create inserts a staff member. The caller supplies the code; a duplicate code surfaces
// as a unique violation (see IsUniqueViolation).
func (r *StaffRepository) Create(ctx context.Context, s *models.Staff) (*models.Staff, error) {
	if s == nil {
		return nil, errors.New("staff is nil")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var username any
	if u := strings.TrimSpace(s.Username); u != "" {
		username = u
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO staff (`+staffColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		s.ID, s.Code, string(s.Role), s.Name, s.Phone, s.City, username, s.Active, formatTime(s.CreatedAt))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id))
}

// GetByCode fetches a staff member by code (e.g. MUM042).
func (r *StaffRepository) GetByCode(ctx context.Context, code string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE code = ?`, strings.ToUpper(strings.TrimSpace(code))))
}

// GetByUsername resolves the staff record behind a pilot/editor login.
func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE username = ?`, username))
}

// List returns staff of the given role ordered by name. An empty role lists everyone.
func (r *StaffRepository) List(ctx context.Context, role models.StaffRole, activeOnly bool) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + staffColumns + ` FROM staff`
	var where []string
	var args []any
	if role != "" {
		where = append(where, "role = ?")
		args = append(args, string(role))
	}
	if activeOnly {
		where = append(where, "active = 1")
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, code"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetActive enables or disables a staff member for future assignments.
func (r *StaffRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE staff SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func scanStaff(row rowScanner) (*models.Staff, error) {
	var s models.Staff
	var role, createdAt string
	var username sql.NullString
	if err := row.Scan(&s.ID, &s.Code, &role, &s.Name, &s.Phone, &s.City, &username, &s.Active, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Role = models.StaffRole(role)
	s.Username = username.String
	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}

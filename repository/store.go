package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrStatusConflict is returned by compare-and-set status updates when the row no longer
// carries the expected status (another writer got there first).
var ErrStatusConflict = errors.New("status changed concurrently")

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles every repository over one handle so multi-entity writes can share a transaction.
type Store struct {
	db *sql.DB

	Users         *UserRepository
	Staff         *StaffRepository
	Orders        *OrderRepository
	Assignments   *AssignmentRepository
	Submissions   *SubmissionRepository
	Comments      *CommentRepository
	Cancellations *CancellationRepository
}

// NewStore wires all repositories against db.
func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.db = db
	return s
}

func newStore(h DBTX) *Store {
	return &Store{
		Users:         NewUserRepository(h),
		Staff:         NewStaffRepository(h),
		Orders:        NewOrderRepository(h),
		Assignments:   NewAssignmentRepository(h),
		Submissions:   NewSubmissionRepository(h),
		Comments:      NewCommentRepository(h),
		Cancellations: NewCancellationRepository(h),
	}
}

// WithTx runs fn against a Store bound to a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
// Only the Store passed to fn may be used inside fn.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return errors.New("store is already bound to a transaction")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// timeLayout is fixed width so that lexical order in SQLite equals chronological order.
const timeLayout = "2006-01-02 15:04:05.000000"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullableTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullableString(p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}

func nullableFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// checkAffected turns an UPDATE/DELETE that touched no rows into sql.ErrNoRows.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"droneVideoOps/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username string, role models.Role) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// StaffRepositoryI defines operations on pilots and editors.
type StaffRepositoryI interface {
	Create(ctx context.Context, s *models.Staff) (*models.Staff, error)
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetByCode(ctx context.Context, code string) (*models.Staff, error)
	GetByUsername(ctx context.Context, username string) (*models.Staff, error)
	List(ctx context.Context, role models.StaffRole, activeOnly bool) ([]models.Staff, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByCode(ctx context.Context, code string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListPage(ctx context.Context, p ListOrdersParams) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepositoryI defines operations on Assignment entities.
type AssignmentRepositoryI interface {
	Create(ctx context.Context, a *models.Assignment) (*models.Assignment, error)
	Current(ctx context.Context, orderID string) (*models.Assignment, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Assignment, error)
	Update(ctx context.Context, a *models.Assignment) error
}

// SubmissionRepositoryI defines operations on Submission entities.
type SubmissionRepositoryI interface {
	Create(ctx context.Context, s *models.Submission) (*models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Submission, error)
	Review(ctx context.Context, id string, status models.SubmissionStatus, comments, reviewer string, at time.Time) error
}

// CommentRepositoryI defines the append-only comment log.
type CommentRepositoryI interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Comment, error)
}

// CancellationRepositoryI defines operations on Cancellation entities.
type CancellationRepositoryI interface {
	Create(ctx context.Context, c *models.Cancellation) (*models.Cancellation, error)
	GetByID(ctx context.Context, id string) (*models.Cancellation, error)
	List(ctx context.Context) ([]models.Cancellation, error)
	AdvanceStatus(ctx context.Context, id string, from, to models.CancellationStatus, refund *float64, notes string, at time.Time) error
}

var (
	_ UserRepositoryI         = (*UserRepository)(nil)
	_ StaffRepositoryI        = (*StaffRepository)(nil)
	_ OrderRepositoryI        = (*OrderRepository)(nil)
	_ AssignmentRepositoryI   = (*AssignmentRepository)(nil)
	_ SubmissionRepositoryI   = (*SubmissionRepository)(nil)
	_ CommentRepositoryI      = (*CommentRepository)(nil)
	_ CancellationRepositoryI = (*CancellationRepository)(nil)
)

// Package workflow is the command handler behind every portal. Each mutating command
// validates its input, consults the lifecycle state machine and applies all of its writes
// in a single transaction before invalidating the collection cache.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"droneVideoOps/internal/cache"
	"droneVideoOps/internal/lifecycle"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

var (
	// ErrNotFound is returned when the referenced order, submission, staff member or
	// cancellation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCommentRequired is returned by actions that must carry an explanation.
	ErrCommentRequired = errors.New("comment is required")
	// ErrForbidden is returned when the actor may not act on the referenced entity.
	ErrForbidden = errors.New("not allowed for this actor")
	// ErrInvalidTransition is returned when the order or cancellation is in a status that
	// does not allow the command.
	ErrInvalidTransition = lifecycle.ErrInvalidTransition
)

// Actor identifies who performs a command. For pilots and editors ID is the staff ID.
type Actor struct {
	Role models.Role
	ID   string
	Name string
}

func (a Actor) label() string {
	if a.Name != "" {
		return a.Name
	}
	return string(a.Role)
}

// Service implements the order workflow.
type Service struct {
	store  *repository.Store
	cache  *cache.Collections
	log    *zap.Logger
	tracer trace.Tracer
	now    func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

func WithCache(c *cache.Collections) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTracer configures the tracer used for command spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand sets the source used for staff codes.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Service) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

// New returns a Service over store.
func New(store *repository.Store, opts ...Option) *Service {
	if store == nil {
		panic("workflow: store is required")
	}
	s := &Service{
		store:  store,
		log:    zap.NewNop(),
		tracer: otel.Tracer("droneVideoOps/workflow"),
		now:    time.Now,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// command runs fn in one transaction under a span named after the command. On success the
// given cache keys are dropped.
func (s *Service) command(ctx context.Context, name, orderRef string, invalidate []string, fn func(ctx context.Context, tx *repository.Store) error) error {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "workflow."+name, trace.WithAttributes(
		attribute.String("command", name),
		attribute.String("order", orderRef),
	))
	defer span.End()

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		return fn(ctx, tx)
	})
	fields := []zap.Field{
		zap.String("command", name),
		zap.String("order", orderRef),
		zap.Duration("duration", time.Since(started)),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.log.Info("command rejected", append(fields, zap.Error(err))...)
		return err
	}
	if err := s.cache.Invalidate(ctx, invalidate...); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("command", name), zap.Error(err))
	}
	s.log.Info("command applied", fields...)
	return nil
}

// query wraps a read in a span.
func (s *Service) query(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "workflow."+name, trace.WithAttributes(attribute.String("query", name)))
}

var orderKeys = []string{cache.Key(cache.CollectionOrders)}

// loadOrder resolves an order by storage ID or by its ORD code.
func loadOrder(ctx context.Context, tx *repository.Store, ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("order: %w", ErrNotFound)
	}
	o, err := tx.Orders.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		if o, err = tx.Orders.GetByCode(ctx, ref); err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", ref, ErrNotFound)
	}
	return o, nil
}

// advance fires ev on o and persists the new status with compare-and-set.
func (s *Service) advance(ctx context.Context, tx *repository.Store, o *models.Order, ev lifecycle.Event, at time.Time) error {
	to, err := lifecycle.Next(o.Status, ev)
	if err != nil {
		return fmt.Errorf("order %s: %w", o.OrderID, err)
	}
	if err := tx.Orders.TransitionStatus(ctx, o.ID, o.Status, to, at); err != nil {
		return fmt.Errorf("order %s %s -> %s: %w", o.OrderID, o.Status, to, err)
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}

func (s *Service) comment(ctx context.Context, tx *repository.Store, actor Actor, orderID string, stage models.CommentStage, text string, at time.Time) error {
	_, err := tx.Comments.Create(ctx, &models.Comment{
		OrderID:    orderID,
		AuthorRole: actor.Role,
		AuthorID:   actor.ID,
		AuthorName: actor.label(),
		Stage:      stage,
		Text:       text,
		CreatedAt:  at,
	})
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	return nil
}

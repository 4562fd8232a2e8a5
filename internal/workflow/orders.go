package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"droneVideoOps/internal/cache"
	"droneVideoOps/internal/idgen"
	"droneVideoOps/internal/lifecycle"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// OrderInput carries the client-facing fields of an order.
type OrderInput struct {
	ClientID      *int64             `json:"client_id"`
	ClientName    string             `json:"client_name" validate:"required,max=120"`
	ClientPhone   string             `json:"client_phone" validate:"required,phone"`
	City          string             `json:"city" validate:"required,max=80"`
	Location      string             `json:"location" validate:"max=200"`
	ShootDate     string             `json:"shoot_date" validate:"omitempty,datetime=2006-01-02"`
	Package       models.PackageType `json:"package" validate:"required,oneof=basic standard premium custom"`
	Amount        float64            `json:"amount" validate:"gt=0"`
	Requirements  string             `json:"requirements" validate:"required"`
	ReferenceLink string             `json:"reference_link" validate:"omitempty,url"`
}

func (in *OrderInput) normalize() {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = normalizePhone(in.ClientPhone)
	in.City = strings.TrimSpace(in.City)
	in.Location = strings.TrimSpace(in.Location)
	in.ShootDate = strings.TrimSpace(in.ShootDate)
	in.Package = models.PackageType(strings.ToLower(strings.TrimSpace(string(in.Package))))
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.ReferenceLink = strings.TrimSpace(in.ReferenceLink)
}

// OrderPatch is a partial update; nil fields are left unchanged.
type OrderPatch struct {
	ClientName    *string
	ClientPhone   *string
	City          *string
	Location      *string
	ShootDate     *string
	Package       *models.PackageType
	Amount        *float64
	Requirements  *string
	ReferenceLink *string
}

const orderCodeAttempts = 3

// CreateOrder validates in and stores a new order. Orders placed by admins start in
// "new", orders placed by clients in "pending".
func (s *Service) CreateOrder(ctx context.Context, actor Actor, in OrderInput) (*models.Order, error) {
	in.normalize()
	var out *models.Order
	err := s.command(ctx, "create_order", "", orderKeys, func(ctx context.Context, tx *repository.Store) error {
		if err := check(in); err != nil {
			return err
		}
		status := models.OrderStatusPending
		if actor.Role == models.RoleAdmin {
			status = models.OrderStatusNew
		}
		now := s.clock()
		for attempt := 0; ; attempt++ {
			o := &models.Order{
				OrderID:       idgen.OrderID(now.Add(time.Duration(attempt) * time.Millisecond)),
				ClientID:      in.ClientID,
				ClientName:    in.ClientName,
				ClientPhone:   in.ClientPhone,
				City:          in.City,
				Location:      in.Location,
				ShootDate:     in.ShootDate,
				Package:       in.Package,
				Amount:        in.Amount,
				Requirements:  in.Requirements,
				ReferenceLink: in.ReferenceLink,
				Status:        status,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			created, err := tx.Orders.Create(ctx, o)
			if err == nil {
				out = created
				return nil
			}
			if !repository.IsUniqueViolation(err) || attempt+1 >= orderCodeAttempts {
				return fmt.Errorf("create order: %w", err)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrders returns every order, most recently created first. The list is served from the
// collection cache when one is configured.
func (s *Service) GetOrders(ctx context.Context) ([]models.Order, error) {
	ctx, span := s.query(ctx, "get_orders")
	defer span.End()
	return cache.Fetch(ctx, s.cache, cache.Key(cache.CollectionOrders), s.store.Orders.List)
}

// GetOrder returns one order by storage ID or ORD code.
func (s *Service) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	ctx, span := s.query(ctx, "get_order")
	defer span.End()
	return loadOrder(ctx, s.store, ref)
}

// ListOrders returns one page of orders matching the filter.
func (s *Service) ListOrders(ctx context.Context, p repository.ListOrdersParams) ([]models.Order, error) {
	ctx, span := s.query(ctx, "list_orders")
	defer span.End()
	for _, st := range p.Statuses {
		if _, err := lifecycle.ParseStatus(string(st)); err != nil {
			return nil, fieldError("statuses", err.Error())
		}
	}
	return s.store.Orders.ListPage(ctx, p)
}

// ListClientOrders returns the orders placed by one client account.
func (s *Service) ListClientOrders(ctx context.Context, clientID int64) ([]models.Order, error) {
	ctx, span := s.query(ctx, "list_client_orders")
	defer span.End()
	return s.store.Orders.ListByClient(ctx, clientID)
}

// UpdateOrderDetails applies a partial update. Completed and cancelled orders are frozen.
func (s *Service) UpdateOrderDetails(ctx context.Context, ref string, patch OrderPatch) (*models.Order, error) {
	var out *models.Order
	err := s.command(ctx, "update_order", ref, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, ref)
		if err != nil {
			return err
		}
		if !lifecycle.IsMutable(o.Status) {
			return fmt.Errorf("order %s is %s: %w", o.OrderID, o.Status, lifecycle.ErrInvalidTransition)
		}
		in := OrderInput{
			ClientID:      o.ClientID,
			ClientName:    pick(patch.ClientName, o.ClientName),
			ClientPhone:   pick(patch.ClientPhone, o.ClientPhone),
			City:          pick(patch.City, o.City),
			Location:      pick(patch.Location, o.Location),
			ShootDate:     pick(patch.ShootDate, o.ShootDate),
			Package:       pick(patch.Package, o.Package),
			Amount:        pick(patch.Amount, o.Amount),
			Requirements:  pick(patch.Requirements, o.Requirements),
			ReferenceLink: pick(patch.ReferenceLink, o.ReferenceLink),
		}
		in.normalize()
		if err := check(in); err != nil {
			return err
		}
		o.ClientName, o.ClientPhone, o.City, o.Location = in.ClientName, in.ClientPhone, in.City, in.Location
		o.ShootDate, o.Package, o.Amount = in.ShootDate, in.Package, in.Amount
		o.Requirements, o.ReferenceLink = in.Requirements, in.ReferenceLink
		o.UpdatedAt = s.clock()
		if err := tx.Orders.Update(ctx, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pick[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

// DeleteOrder removes an order together with its assignments, submissions, comments and
// cancellation.
func (s *Service) DeleteOrder(ctx context.Context, ref string) error {
	return s.command(ctx, "delete_order", ref, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := tx.Orders.Delete(ctx, o.ID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

// ApproveOrder moves a new or pending order to approved and records one general comment.
func (s *Service) ApproveOrder(ctx context.Context, actor Actor, ref, note string) (*models.Order, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = "Order approved"
	}
	return s.transitionWithComment(ctx, "approve_order", actor, ref, lifecycle.EventApprove, models.StageGeneral, note)
}

// RejectOrder moves a new or pending order to rejected. The comment is mandatory.
func (s *Service) RejectOrder(ctx context.Context, actor Actor, ref, comment string) (*models.Order, error) {
	comment, err := requireComment(comment)
	if err != nil {
		return nil, err
	}
	return s.transitionWithComment(ctx, "reject_order", actor, ref, lifecycle.EventReject, models.StageGeneral, comment)
}

// SendToFinalReview hands an order with an approved edit to the client.
func (s *Service) SendToFinalReview(ctx context.Context, actor Actor, ref, note string) (*models.Order, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = "Sent to client for final review"
	}
	return s.transitionWithComment(ctx, "send_final_review", actor, ref, lifecycle.EventSendFinalReview, models.StageGeneral, note)
}

// RequestRevision sends an order in final review back to editing with the client's feedback.
func (s *Service) RequestRevision(ctx context.Context, actor Actor, ref, feedback string) (*models.Order, error) {
	feedback, err := requireComment(feedback)
	if err != nil {
		return nil, err
	}
	return s.transitionWithComment(ctx, "request_revision", actor, ref, lifecycle.EventRequestRevision, models.StageClientFeedback, feedback)
}

// Complete closes an order whose edit was approved.
func (s *Service) Complete(ctx context.Context, actor Actor, ref, note string) (*models.Order, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = "Order completed"
	}
	return s.transitionWithComment(ctx, "complete_order", actor, ref, lifecycle.EventComplete, models.StageGeneral, note)
}

func (s *Service) transitionWithComment(ctx context.Context, name string, actor Actor, ref string, ev lifecycle.Event, stage models.CommentStage, text string) (*models.Order, error) {
	var out *models.Order
	err := s.command(ctx, name, ref, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, ref)
		if err != nil {
			return err
		}
		now := s.clock()
		if err := s.advance(ctx, tx, o, ev, now); err != nil {
			return err
		}
		if err := s.comment(ctx, tx, actor, o.ID, stage, text, now); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RequestInfo asks the client for more details about a new or pending order. The status
// does not change; the question is appended as client feedback.
func (s *Service) RequestInfo(ctx context.Context, actor Actor, ref, question string) (*models.Order, error) {
	question, err := requireComment(question)
	if err != nil {
		return nil, err
	}
	var out *models.Order
	err = s.command(ctx, "request_info", ref, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, ref)
		if err != nil {
			return err
		}
		if o.Status != models.OrderStatusPending && o.Status != models.OrderStatusNew {
			return fmt.Errorf("order %s: request info not allowed from %s: %w", o.OrderID, o.Status, lifecycle.ErrInvalidTransition)
		}
		if err := s.comment(ctx, tx, actor, o.ID, models.StageClientFeedback, question, s.clock()); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OrderDetail is an order with its current assignment and history.
type OrderDetail struct {
	Order        models.Order
	Assignment   *models.Assignment
	Submissions  []models.Submission
	Comments     []models.Comment
	Cancellation *models.Cancellation
	Actions      []lifecycle.Event // events the order's current status accepts
}

// GetOrderDetail loads an order together with everything recorded against it.
func (s *Service) GetOrderDetail(ctx context.Context, ref string) (*OrderDetail, error) {
	ctx, span := s.query(ctx, "get_order_detail")
	defer span.End()
	o, err := loadOrder(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	d := &OrderDetail{Order: *o, Actions: lifecycle.Allowed(o.Status)}
	if d.Assignment, err = s.store.Assignments.Current(ctx, o.ID); err != nil {
		return nil, fmt.Errorf("current assignment: %w", err)
	}
	if d.Submissions, err = s.store.Submissions.ListByOrder(ctx, o.ID); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if d.Comments, err = s.store.Comments.ListByOrder(ctx, o.ID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if d.Cancellation, err = s.store.Cancellations.GetByOrderID(ctx, o.ID); err != nil {
		return nil, fmt.Errorf("get cancellation: %w", err)
	}
	return d, nil
}

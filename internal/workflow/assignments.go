package workflow

import (
	"context"
	"fmt"
	"strings"

	"droneVideoOps/internal/lifecycle"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// AssignInput names the staff to bind to an order. At least one side is required.
type AssignInput struct {
	OrderID  string
	PilotID  string
	EditorID string
}

// AssignedOrder pairs a staff member's current assignment with its order.
type AssignedOrder struct {
	Assignment models.Assignment `json:"assignment"`
	Order      models.Order      `json:"order"`
}

// Assign records a new assignment for an order and advances it. A side that is not given
// is carried over from the current assignment so the latest record always names both.
func (s *Service) Assign(ctx context.Context, actor Actor, in AssignInput) (*models.Assignment, error) {
	in.PilotID = strings.TrimSpace(in.PilotID)
	in.EditorID = strings.TrimSpace(in.EditorID)
	if in.PilotID == "" && in.EditorID == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"pilot_id":  "Pilot or editor is required",
			"editor_id": "Pilot or editor is required",
		}}
	}
	var out *models.Assignment
	err := s.command(ctx, "assign", in.OrderID, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}
		a := &models.Assignment{OrderID: o.ID, AssignedBy: actor.label()}
		if cur, err := tx.Assignments.Current(ctx, o.ID); err != nil {
			return fmt.Errorf("current assignment: %w", err)
		} else if cur != nil {
			a.PilotID, a.PilotName = cur.PilotID, cur.PilotName
			a.EditorID, a.EditorName = cur.EditorID, cur.EditorName
		}
		if in.PilotID != "" {
			p, err := activeStaff(ctx, tx, in.PilotID, models.StaffPilot, "pilot_id")
			if err != nil {
				return err
			}
			a.PilotID, a.PilotName = &p.ID, p.Name
		}
		if in.EditorID != "" {
			e, err := activeStaff(ctx, tx, in.EditorID, models.StaffEditor, "editor_id")
			if err != nil {
				return err
			}
			a.EditorID, a.EditorName = &e.ID, e.Name
		}

		now := s.clock()
		if err := s.advance(ctx, tx, o, lifecycle.AssignEvent(a.PilotID != nil, a.EditorID != nil), now); err != nil {
			return err
		}
		a.CreatedAt = now
		if out, err = tx.Assignments.Create(ctx, a); err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		text := fmt.Sprintf("Assigned - Pilot: %s, Editor: %s", orDash(a.PilotName), orDash(a.EditorName))
		return s.comment(ctx, tx, actor, o.ID, models.StageGeneral, text, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// activeStaff resolves a staff member by ID or code and checks role and availability.
func activeStaff(ctx context.Context, tx *repository.Store, ref string, role models.StaffRole, field string) (*models.Staff, error) {
	st, err := tx.Staff.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if st == nil {
		if st, err = tx.Staff.GetByCode(ctx, ref); err != nil {
			return nil, fmt.Errorf("get staff: %w", err)
		}
	}
	if st == nil {
		return nil, fmt.Errorf("%s %s: %w", role, ref, ErrNotFound)
	}
	if st.Role != role {
		return nil, fieldError(field, fmt.Sprintf("%s is not a %s", st.Code, role))
	}
	if !st.Active {
		return nil, fieldError(field, fmt.Sprintf("%s is inactive", st.Code))
	}
	return st, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// CurrentAssignment returns the latest assignment of an order, or nil when none exists.
func (s *Service) CurrentAssignment(ctx context.Context, ref string) (*models.Assignment, error) {
	ctx, span := s.query(ctx, "current_assignment")
	defer span.End()
	o, err := loadOrder(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Assignments.Current(ctx, o.ID)
}

// ListAssignments returns an order's assignment history, newest first.
func (s *Service) ListAssignments(ctx context.Context, ref string) ([]models.Assignment, error) {
	ctx, span := s.query(ctx, "list_assignments")
	defer span.End()
	o, err := loadOrder(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Assignments.ListByOrder(ctx, o.ID)
}

// ListStaffAssignments returns the orders a pilot or editor is currently assigned to.
func (s *Service) ListStaffAssignments(ctx context.Context, staffID string) ([]AssignedOrder, error) {
	ctx, span := s.query(ctx, "list_staff_assignments")
	defer span.End()
	list, err := s.store.Assignments.ListCurrentForStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	out := make([]AssignedOrder, 0, len(list))
	for _, a := range list {
		o, err := s.store.Orders.GetByID(ctx, a.OrderID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			continue
		}
		out = append(out, AssignedOrder{Assignment: a, Order: *o})
	}
	return out, nil
}

package workflow

import (
	"context"
	"fmt"
	"strings"

	"droneVideoOps/internal/lifecycle"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// CancelInput describes a cancellation.
type CancelInput struct {
	OrderID      string                    `json:"order_id"`
	Reason       models.CancellationReason `json:"reason" validate:"required,oneof=client weather gear_issue pilot_unavailable editor_unavailable other"`
	RefundAmount *float64                  `json:"refund_amount" validate:"omitempty,gte=0"`
	Notes        string                    `json:"notes" validate:"max=2000"`
}

// Cancel moves an order to cancelled and records a cancellation that snapshots the
// client, city and currently assigned staff. Completed and cancelled orders are refused.
func (s *Service) Cancel(ctx context.Context, actor Actor, in CancelInput) (*models.Cancellation, error) {
	in.Reason = models.CancellationReason(strings.ToLower(strings.TrimSpace(string(in.Reason))))
	in.Notes = strings.TrimSpace(in.Notes)
	var out *models.Cancellation
	err := s.command(ctx, "cancel", in.OrderID, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		if err := check(in); err != nil {
			return err
		}
		o, err := loadOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}
		now := s.clock()
		if err := s.advance(ctx, tx, o, lifecycle.EventCancel, now); err != nil {
			return err
		}
		c := &models.Cancellation{
			OrderID:      o.ID,
			OrderCode:    o.OrderID,
			ClientName:   o.ClientName,
			City:         o.City,
			Reason:       in.Reason,
			Status:       models.CancellationCancelled,
			RefundAmount: in.RefundAmount,
			AdminNotes:   in.Notes,
			CancelledAt:  now,
			UpdatedAt:    now,
		}
		cur, err := tx.Assignments.Current(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("current assignment: %w", err)
		}
		if cur != nil {
			c.PilotName, c.EditorName = cur.PilotName, cur.EditorName
		}
		if out, err = tx.Cancellations.Create(ctx, c); err != nil {
			return fmt.Errorf("create cancellation: %w", err)
		}
		text := "Cancelled - Reason: " + string(in.Reason)
		if in.Notes != "" {
			text += " (" + in.Notes + ")"
		}
		return s.comment(ctx, tx, actor, o.ID, models.StageGeneral, text, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReassignCancellation marks that the cancelled shoot was handed to other staff.
// The order itself stays cancelled.
func (s *Service) ReassignCancellation(ctx context.Context, actor Actor, id, notes string) (*models.Cancellation, error) {
	return s.advanceCancellation(ctx, "reassign_cancellation", actor, id, models.CancellationReassigned, nil, notes)
}

// InitiateRefund records that a refund was started. A nil amount keeps the amount given
// at cancellation time.
func (s *Service) InitiateRefund(ctx context.Context, actor Actor, id string, amount *float64, notes string) (*models.Cancellation, error) {
	if amount != nil && *amount < 0 {
		return nil, fieldError("refund_amount", "Refund amount must be at least 0")
	}
	return s.advanceCancellation(ctx, "initiate_refund", actor, id, models.CancellationRefundInitiated, amount, notes)
}

// MarkHandled closes the follow-up of a cancellation.
func (s *Service) MarkHandled(ctx context.Context, actor Actor, id, notes string) (*models.Cancellation, error) {
	return s.advanceCancellation(ctx, "mark_cancellation_handled", actor, id, models.CancellationRefundCompleted, nil, notes)
}

func (s *Service) advanceCancellation(ctx context.Context, name string, actor Actor, id string, to models.CancellationStatus, amount *float64, notes string) (*models.Cancellation, error) {
	notes = strings.TrimSpace(notes)
	var out *models.Cancellation
	err := s.command(ctx, name, "", nil, func(ctx context.Context, tx *repository.Store) error {
		c, err := tx.Cancellations.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get cancellation: %w", err)
		}
		if c == nil {
			return fmt.Errorf("cancellation %s: %w", id, ErrNotFound)
		}
		if !lifecycle.CanAdvanceCancellation(c.Status, to) {
			return fmt.Errorf("cancellation of %s: %s -> %s: %w", c.OrderCode, c.Status, to, lifecycle.ErrInvalidTransition)
		}
		now := s.clock()
		if err := tx.Cancellations.AdvanceStatus(ctx, c.ID, c.Status, to, amount, notes, now); err != nil {
			return fmt.Errorf("advance cancellation %s: %w", c.ID, err)
		}
		text := fmt.Sprintf("Cancellation %s by %s", strings.ReplaceAll(string(to), "_", " "), actor.label())
		if notes != "" {
			text += ": " + notes
		}
		if err := s.comment(ctx, tx, actor, c.OrderID, models.StageGeneral, text, now); err != nil {
			return err
		}
		if out, err = tx.Cancellations.GetByID(ctx, c.ID); err != nil {
			return fmt.Errorf("get cancellation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCancellations returns every cancellation, newest first.
func (s *Service) ListCancellations(ctx context.Context) ([]models.Cancellation, error) {
	ctx, span := s.query(ctx, "list_cancellations")
	defer span.End()
	return s.store.Cancellations.List(ctx)
}

// Package lifecycle holds the order state machine. Every status change of an order goes
// through Next; there is no free-form status override.
package lifecycle

import (
	"errors"
	"fmt"

	"droneVideoOps/models"
)

// ErrInvalidTransition is returned when an event is not allowed from the current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Event is a named action that may move an order to another status.
type Event string

const (
	EventApprove         Event = "approve"
	EventReject          Event = "reject"
	EventAssign          Event = "assign"
	EventAssignEditor    Event = "assign_editor"
	EventPilotSubmit     Event = "pilot_submit"
	EventPilotApprove    Event = "pilot_approve"
	EventEditorSubmit    Event = "editor_submit"
	EventEditorApprove   Event = "editor_approve"
	EventSendFinalReview Event = "send_final_review"
	EventRequestRevision Event = "request_revision"
	EventComplete        Event = "complete"
	EventCancel          Event = "cancel"
)

// transitions maps event -> from -> to. EventCancel is handled separately because it
// applies to every non-terminal status.
var transitions = map[Event]map[models.OrderStatus]models.OrderStatus{
	EventApprove: {
		models.OrderStatusPending: models.OrderStatusApproved,
		models.OrderStatusNew:     models.OrderStatusApproved,
	},
	EventReject: {
		models.OrderStatusPending: models.OrderStatusRejected,
		models.OrderStatusNew:     models.OrderStatusRejected,
	},
	EventAssign: {
		models.OrderStatusApproved: models.OrderStatusAssigned,
		models.OrderStatusAssigned: models.OrderStatusAssigned,
		// binding an editor once the raw footage is accepted starts the edit
		models.OrderStatusPilotReviewed: models.OrderStatusEditing,
		models.OrderStatusEditing:       models.OrderStatusEditing,
	},
	// an assignment without a pilot has no footage to wait for, so editing starts at once
	EventAssignEditor: {
		models.OrderStatusApproved:      models.OrderStatusEditing,
		models.OrderStatusPilotReviewed: models.OrderStatusEditing,
		models.OrderStatusEditing:       models.OrderStatusEditing,
	},
	EventPilotSubmit: {
		models.OrderStatusAssigned:       models.OrderStatusPilotSubmitted,
		models.OrderStatusPilotSubmitted: models.OrderStatusPilotSubmitted,
	},
	EventPilotApprove: {
		models.OrderStatusPilotSubmitted: models.OrderStatusPilotReviewed,
	},
	EventEditorSubmit: {
		models.OrderStatusPilotReviewed:   models.OrderStatusEditorSubmitted,
		models.OrderStatusEditing:         models.OrderStatusEditorSubmitted,
		models.OrderStatusEditorSubmitted: models.OrderStatusEditorSubmitted,
	},
	EventEditorApprove: {
		models.OrderStatusEditorSubmitted: models.OrderStatusEditorReviewed,
	},
	EventSendFinalReview: {
		models.OrderStatusEditorReviewed: models.OrderStatusFinalReview,
	},
	EventRequestRevision: {
		models.OrderStatusFinalReview: models.OrderStatusEditing,
	},
	EventComplete: {
		models.OrderStatusEditorReviewed: models.OrderStatusCompleted,
		models.OrderStatusFinalReview:    models.OrderStatusCompleted,
	},
}

var allStatuses = []models.OrderStatus{
	models.OrderStatusNew,
	models.OrderStatusPending,
	models.OrderStatusApproved,
	models.OrderStatusRejected,
	models.OrderStatusAssigned,
	models.OrderStatusPilotSubmitted,
	models.OrderStatusPilotReviewed,
	models.OrderStatusEditorSubmitted,
	models.OrderStatusEditorReviewed,
	models.OrderStatusEditing,
	models.OrderStatusFinalReview,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

// Statuses returns every known order status in lifecycle order.
func Statuses() []models.OrderStatus {
	out := make([]models.OrderStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus validates a status string.
func ParseStatus(s string) (models.OrderStatus, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// IsTerminal reports whether no event can leave the status.
func IsTerminal(s models.OrderStatus) bool {
	return s == models.OrderStatusCompleted || s == models.OrderStatusCancelled
}

// IsMutable reports whether the order's details may still be edited.
func IsMutable(s models.OrderStatus) bool {
	return !IsTerminal(s)
}

// Next returns the status an order moves to when ev happens in status from.
func Next(from models.OrderStatus, ev Event) (models.OrderStatus, error) {
	if ev == EventCancel {
		if IsTerminal(from) {
			return "", fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidTransition, from)
		}
		return models.OrderStatusCancelled, nil
	}
	table, ok := transitions[ev]
	if !ok {
		return "", fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev)
	}
	to, ok := table[from]
	if !ok {
		return "", fmt.Errorf("%w: %s not allowed from %s", ErrInvalidTransition, ev, from)
	}
	return to, nil
}

// Can reports whether ev is allowed from status from.
func Can(from models.OrderStatus, ev Event) bool {
	_, err := Next(from, ev)
	return err == nil
}

// Allowed lists the events that can fire from status s, in a stable order.
func Allowed(s models.OrderStatus) []Event {
	order := []Event{
		EventApprove, EventReject, EventAssign, EventAssignEditor, EventPilotSubmit, EventPilotApprove,
		EventEditorSubmit, EventEditorApprove, EventSendFinalReview, EventRequestRevision,
		EventComplete, EventCancel,
	}
	var out []Event
	for _, ev := range order {
		if Can(s, ev) {
			out = append(out, ev)
		}
	}
	return out
}

// AssignEvent picks the event for a new assignment: editor-only assignments skip the
// footage stage.
func AssignEvent(hasPilot, hasEditor bool) Event {
	if hasEditor && !hasPilot {
		return EventAssignEditor
	}
	return EventAssign
}

// SubmitEvent and ApproveEvent pick the role-specific event for a submission.
func SubmitEvent(role models.StaffRole) Event {
	if role == models.StaffEditor {
		return EventEditorSubmit
	}
	return EventPilotSubmit
}

func ApproveEvent(role models.StaffRole) Event {
	if role == models.StaffEditor {
		return EventEditorApprove
	}
	return EventPilotApprove
}

// cancellationRank orders the follow-up states of a cancellation.
var cancellationRank = map[models.CancellationStatus]int{
	models.CancellationCancelled:       0,
	models.CancellationReassigned:      1,
	models.CancellationRefundInitiated: 2,
	models.CancellationRefundCompleted: 3,
}

// CanAdvanceCancellation reports whether a cancellation may move from one status to
// another. Moves are strictly forward; skipping a step is allowed.
func CanAdvanceCancellation(from, to models.CancellationStatus) bool {
	f, ok := cancellationRank[from]
	if !ok {
		return false
	}
	t, ok := cancellationRank[to]
	if !ok {
		return false
	}
	return t > f
}

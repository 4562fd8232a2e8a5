package models

import "time"

// AssignmentStatusAssigned is the only status an assignment record carries.
const AssignmentStatusAssigned = "assigned"

// Assignment binds a pilot and/or an editor to an order.
// Several records may exist for one order; the most recent one is current.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	OrderID    string    `db:"order_id" json:"order_id"`
	PilotID    *string   `db:"pilot_id" json:"pilot_id,omitempty"`
	PilotName  string    `db:"pilot_name" json:"pilot_name,omitempty"`
	EditorID   *string   `db:"editor_id" json:"editor_id,omitempty"`
	EditorName string    `db:"editor_name" json:"editor_name,omitempty"`
	Status     string    `db:"status" json:"status"`
	AssignedBy string    `db:"assigned_by" json:"assigned_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

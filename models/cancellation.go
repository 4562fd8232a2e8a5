package models

import "time"

// CancellationReason explains why an order was cancelled.
type CancellationReason string

const (
	ReasonClient            CancellationReason = "client"
	ReasonWeather           CancellationReason = "weather"
	ReasonGearIssue         CancellationReason = "gear_issue"
	ReasonPilotUnavailable  CancellationReason = "pilot_unavailable"
	ReasonEditorUnavailable CancellationReason = "editor_unavailable"
	ReasonOther             CancellationReason = "other"
)

// CancellationStatus is the follow-up state of a cancelled order. It only moves forward.
type CancellationStatus string

const (
	CancellationCancelled       CancellationStatus = "cancelled"
	CancellationReassigned      CancellationStatus = "reassigned"
	CancellationRefundInitiated CancellationStatus = "refund_initiated"
	CancellationRefundCompleted CancellationStatus = "refund_completed"
)

// Cancellation records a cancellation event. Client, city and staff names are copied from
// the order at cancellation time so later edits to the order do not rewrite history.
type Cancellation struct {
	ID           string             `db:"id" json:"id"`
	OrderID      string             `db:"order_id" json:"order_id"`
	OrderCode    string             `db:"order_code" json:"order_code"`
	ClientName   string             `db:"client_name" json:"client_name"`
	City         string             `db:"city" json:"city"`
	PilotName    string             `db:"pilot_name" json:"pilot_name,omitempty"`
	EditorName   string             `db:"editor_name" json:"editor_name,omitempty"`
	Reason       CancellationReason `db:"reason" json:"reason"`
	Status       CancellationStatus `db:"status" json:"status"`
	RefundAmount *float64           `db:"refund_amount" json:"refund_amount,omitempty"`
	AdminNotes   string             `db:"admin_notes" json:"admin_notes,omitempty"`
	CancelledAt  time.Time          `db:"cancelled_at" json:"cancelled_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

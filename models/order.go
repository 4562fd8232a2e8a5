package models

import "time"

// OrderStatus represents the current lifecycle stage of a video-production order.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusApproved        OrderStatus = "approved"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusAssigned        OrderStatus = "assigned"
	OrderStatusPilotSubmitted  OrderStatus = "pilot_submitted"
	OrderStatusPilotReviewed   OrderStatus = "pilot_reviewed"
	OrderStatusEditorSubmitted OrderStatus = "editor_submitted"
	OrderStatusEditorReviewed  OrderStatus = "editor_reviewed"
	OrderStatusEditing         OrderStatus = "editing"
	OrderStatusFinalReview     OrderStatus = "final_review"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// PackageType is the product tier the client purchased.
type PackageType string

const (
	PackageBasic    PackageType = "basic"
	PackageStandard PackageType = "standard"
	PackagePremium  PackageType = "premium"
	PackageCustom   PackageType = "custom"
)

// Order is the central entity of the workflow.
// ID is the internal storage identifier; OrderID is the human-readable code shown to clients.
type Order struct {
	ID            string      `db:"id" json:"id"`
	OrderID       string      `db:"order_code" json:"order_id"`
	ClientID      *int64      `db:"client_id" json:"client_id,omitempty"`
	ClientName    string      `db:"client_name" json:"client_name"`
	ClientPhone   string      `db:"client_phone" json:"client_phone"`
	City          string      `db:"city" json:"city"`
	Location      string      `db:"location" json:"location,omitempty"`
	ShootDate     string      `db:"shoot_date" json:"shoot_date,omitempty"`
	Package       PackageType `db:"package" json:"package"`
	Amount        float64     `db:"amount" json:"amount"`
	Requirements  string      `db:"requirements" json:"requirements"`
	ReferenceLink string      `db:"reference_link" json:"reference_link,omitempty"`
	DriveLink     string      `db:"drive_link" json:"drive_link,omitempty"`
	Status        OrderStatus `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

package models

import "time"

// StaffRole distinguishes the two kinds of field staff an order can be assigned to.
type StaffRole string

const (
	StaffPilot  StaffRole = "pilot"
	StaffEditor StaffRole = "editor"
)

// Staff is a pilot or an editor. Username links the record to a login in `users`.
type Staff struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Role      StaffRole `db:"role" json:"role"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	City      string    `db:"city" json:"city,omitempty"`
	Username  string    `db:"username" json:"username,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package models

import (
	"time"
)

// OrderNote is an append-only audit entry attached to an order. Rows are
// write-once; transition notes carry a dedupe key so a retried transition
// cannot append the same note twice.
type OrderNote struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OrderRef       uint      `gorm:"index;not null" json:"-"`
	OrderID        string    `gorm:"index;not null" json:"order_id"`
	UserID         uint      `gorm:"not null" json:"user_id"`
	UserName       string    `json:"user_name"`
	UserDepartment string    `json:"user_department"`
	Note           string    `gorm:"not null" json:"note"`
	NoteType       string    `gorm:"default:'General'" json:"note_type"`
	DedupeKey      *string   `gorm:"uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OrderNote) TableName() string {
	return "order_notes"
}

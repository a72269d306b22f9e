package models

import (
	"time"
)

// Document is a file attachment metadata row. The blob itself lives under the
// upload directory; the status machine never touches documents.
type Document struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	OrderRef     uint      `gorm:"index;not null" json:"-"`
	OrderID      string    `gorm:"index;not null" json:"order_id"`
	FileName     string    `gorm:"not null" json:"file_name"`
	DocumentType string    `gorm:"not null" json:"document_type"`
	StoragePath  string    `gorm:"not null" json:"-"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type,omitempty"`
	UploadedBy   string    `gorm:"not null" json:"uploaded_by"`
	UploadedAt   time.Time `gorm:"index" json:"uploaded_at"`
}

// TableName sets the table name.
func (Document) TableName() string {
	return "documents"
}

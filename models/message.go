package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a single message within a thread. Immutable once created.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ThreadID  uint           `gorm:"not null;index" json:"thread_id"` // foreign key to threads table
	SenderID  uint           `gorm:"not null;index" json:"sender_id"` // foreign key to users table; must be a participant
	Sender    User           `gorm:"foreignKey:SenderID" json:"sender"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Attachments []Attachment `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// Attachment represents a file attached to a message. FileS3Key is an opaque
// reference into blob storage, never a public URL.
type Attachment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;index" json:"message_id"`
	FileS3Key string    `gorm:"not null" json:"-"`
	FileURL   string    `gorm:"-" json:"file_url,omitempty"` // computed field, presigned URL for download
	FileType  string    `gorm:"size:128;not null" json:"file_type"`
	FileName  string    `gorm:"size:256;not null" json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}

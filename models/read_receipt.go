package models

import "time"

// ReadReceipt tracks when a user read a message. Re-marking read refreshes
// ReadAt rather than inserting a second row.
type ReadReceipt struct {
	MessageID uint      `gorm:"primaryKey;autoIncrement:false" json:"message_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ReadAt    time.Time `gorm:"not null" json:"read_at"`
}

// TableName specifies the table name for the ReadReceipt model
func (ReadReceipt) TableName() string {
	return "read_receipts"
}

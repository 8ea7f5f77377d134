package models

import (
	"time"
)

// Notification delivery channels
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification statuses
const (
	NotificationUnread = "unread" // in-app, not yet seen
	NotificationRead   = "read"   // in-app, seen
	NotificationSent   = "sent"   // email/sms, transport accepted it
	NotificationFailed = "failed" // email/sms, transport errored or timed out
)

// Notification records one delivery attempt of one message to one recipient
// over one channel. A recipient typically gets several rows per message, one
// per channel attempted.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;index" json:"message_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // recipient
	Channel   string    `gorm:"size:16;not null" json:"channel"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Thread represents a conversation between a set of participants.
// A thread is never hard-deleted; archiving is tracked in thread_archives.
type Thread struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	Subject        string         `gorm:"not null" json:"subject"`
	PropertyID     *uint          `gorm:"index" json:"property_id,omitempty"` // optional link to the property the conversation is about
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"` // bumped on every new message
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Participants []Participant `gorm:"foreignKey:ThreadID" json:"participants,omitempty"`
	Archived     bool          `gorm:"-" json:"archived"` // computed from thread_archives presence
}

// TableName specifies the table name for the Thread model
func (Thread) TableName() string {
	return "threads"
}

// Participant links a user to a thread. The presence of this row is the sole
// authorization gate for reading, posting, attaching and marking-read within
// the thread.
type Participant struct {
	ThreadID uint      `gorm:"primaryKey;autoIncrement:false" json:"thread_id"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Role     string    `gorm:"size:32;not null" json:"role"` // role label at join time, e.g. "tenant", "admin"
	JoinedAt time.Time `json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for the Participant model
func (Participant) TableName() string {
	return "participants"
}

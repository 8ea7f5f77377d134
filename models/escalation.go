package models

import "time"

// Escalation is an append-only audit record of a thread being promoted to an
// administrative role. It never replaces or removes participants.
type Escalation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  uint      `gorm:"not null;index" json:"thread_id"`
	FromRole  string    `gorm:"size:32;not null" json:"from_role"`
	ToRole    string    `gorm:"size:32;not null" json:"to_role"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Escalation model
func (Escalation) TableName() string {
	return "escalations"
}

package models

import "time"

// ThreadArchive marks a thread as archived. Keyed 1:1 by thread: archiving an
// already-archived thread updates ArchivedBy/Reason instead of adding a row.
type ThreadArchive struct {
	ThreadID   uint      `gorm:"primaryKey;autoIncrement:false" json:"thread_id"`
	ArchivedBy uint      `gorm:"not null" json:"archived_by"`
	Reason     *string   `json:"reason,omitempty"`
	ArchivedAt time.Time `gorm:"not null" json:"archived_at"`
}

// TableName specifies the table name for the ThreadArchive model
func (ThreadArchive) TableName() string {
	return "thread_archives"
}

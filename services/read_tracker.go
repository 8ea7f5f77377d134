package services

import (
	"fmt"
	"time"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
)

// ReadTracker records per-user, per-message read timestamps.
type ReadTracker struct {
	repo ThreadRepository
}

// NewReadTracker creates a read tracker over the repository.
func NewReadTracker(repo ThreadRepository) *ReadTracker {
	return &ReadTracker{repo: repo}
}

// MarkRead upserts the (message, user) read receipt with the current time.
// Calling it twice just refreshes the timestamp. The caller must be a
// participant of the thread, and the message must belong to it.
func (t *ReadTracker) MarkRead(threadID, messageID, userID uint) (*models.ReadReceipt, error) {
	isParticipant, err := t.repo.IsParticipant(threadID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		if _, err := t.repo.GetThread(threadID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: caller is not a participant of this thread", ErrForbidden)
	}

	message, err := t.repo.GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	if message.ThreadID != threadID {
		return nil, fmt.Errorf("%w: message does not belong to this thread", ErrNotFound)
	}

	readAt := time.Now().UTC()
	if err := t.repo.UpsertReadReceipt(messageID, userID, readAt); err != nil {
		return nil, err
	}
	return &models.ReadReceipt{MessageID: messageID, UserID: userID, ReadAt: readAt}, nil
}

package services

import (
	"fmt"
	"time"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
)

// ArchiveService marks threads archived with an audit reason. Idempotent per
// thread: re-archiving updates who/why, never adds a second record.
type ArchiveService struct {
	repo ThreadRepository
}

// NewArchiveService creates an archive service over the repository.
func NewArchiveService(repo ThreadRepository) *ArchiveService {
	return &ArchiveService{repo: repo}
}

// Archive upserts the thread's 1:1 archive record. Archiving does not remove
// participants and does not block further messages.
func (s *ArchiveService) Archive(threadID uint, callerRole roles.Role, callerID uint, reason *string) (*models.ThreadArchive, error) {
	if !roles.CanArchive(callerRole) {
		return nil, fmt.Errorf("%w: role %q cannot archive threads", ErrForbidden, callerRole)
	}

	archive := &models.ThreadArchive{
		ThreadID:   threadID,
		ArchivedBy: callerID,
		Reason:     reason,
		ArchivedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertArchive(archive); err != nil {
		return nil, err
	}
	return archive, nil
}

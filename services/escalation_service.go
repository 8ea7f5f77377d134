package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
)

// EscalationService promotes a thread's visibility to an administrative role.
// Escalations are one-way: repeated calls append further audit rows, there is
// no un-escalate.
type EscalationService struct {
	repo ThreadRepository
}

// NewEscalationService creates an escalation service over the repository.
func NewEscalationService(repo ThreadRepository) *EscalationService {
	return &EscalationService{repo: repo}
}

// Escalate writes the audit record and adds one holder of the target role as
// a participant. When no user holds the target role the participant-add is
// skipped; the audit trail still reflects the attempt.
func (s *EscalationService) Escalate(threadID uint, callerRole, targetRole roles.Role, reason *string) (*models.Escalation, error) {
	if !roles.CanEscalate(callerRole) {
		return nil, fmt.Errorf("%w: role %q cannot escalate", ErrForbidden, callerRole)
	}
	if !roles.CanEscalateTo(targetRole) {
		return nil, fmt.Errorf("%w: %q is not an administrative escalation target", ErrInvalidArgument, targetRole)
	}

	escalation := &models.Escalation{
		ThreadID: threadID,
		FromRole: string(callerRole),
		ToRole:   string(targetRole),
		Reason:   reason,
	}
	if err := s.repo.CreateEscalation(escalation); err != nil {
		return nil, err
	}

	handler, err := s.repo.FindUserByRole(targetRole)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("escalate thread %d: no user holds role %q, participant add skipped", threadID, targetRole)
			return escalation, nil
		}
		return nil, err
	}
	if err := s.repo.AddParticipant(threadID, handler.ID, string(targetRole)); err != nil {
		return nil, err
	}
	return escalation, nil
}

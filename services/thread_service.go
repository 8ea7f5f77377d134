package services

import (
	"fmt"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
)

// ThreadService creates and reads threads. Creation enforces the
// direct-message role table between the creator and every initial recipient;
// inside an existing thread, participantship alone is the gate.
type ThreadService struct {
	repo     ThreadRepository
	messages *MessageService
}

// NewThreadService creates a thread service. The message service is used to
// post the optional first message so it fans out like any other.
func NewThreadService(repo ThreadRepository, messages *MessageService) *ThreadService {
	return &ThreadService{repo: repo, messages: messages}
}

// CreateThreadInput carries the parameters for starting a conversation.
type CreateThreadInput struct {
	OrganizationID uint
	Subject        string
	PropertyID     *uint
	CreatorID      uint
	RecipientIDs   []uint
	FirstBody      string // optional; posted as the first message when non-empty
}

// CreateThread starts a conversation between the creator and the recipients.
func (s *ThreadService) CreateThread(input CreateThreadInput) (*models.Thread, error) {
	if input.Subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidArgument)
	}
	if len(input.RecipientIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", ErrInvalidArgument)
	}

	creator, err := s.repo.GetUser(input.CreatorID)
	if err != nil {
		return nil, err
	}
	creatorRole := roles.Resolve(creator.Role)

	participants := []models.Participant{
		{UserID: creator.ID, Role: creator.Role},
	}
	for _, recipientID := range input.RecipientIDs {
		if recipientID == creator.ID {
			continue
		}
		recipient, err := s.repo.GetUser(recipientID)
		if err != nil {
			return nil, err
		}
		if !roles.CanDirectMessage(creatorRole, roles.Resolve(recipient.Role)) {
			return nil, fmt.Errorf("%w: role %q may not message role %q directly", ErrForbidden, creatorRole, roles.Resolve(recipient.Role))
		}
		participants = append(participants, models.Participant{UserID: recipient.ID, Role: recipient.Role})
	}

	thread := &models.Thread{
		OrganizationID: input.OrganizationID,
		Subject:        input.Subject,
		PropertyID:     input.PropertyID,
	}
	if err := s.repo.CreateThread(thread, participants); err != nil {
		return nil, err
	}

	if input.FirstBody != "" {
		if _, err := s.messages.PostMessage(thread.ID, creator.ID, input.FirstBody); err != nil {
			return nil, err
		}
	}
	return s.repo.GetThread(thread.ID)
}

// ListThreads lists the threads visible to the caller: their own for regular
// roles, the whole organization for admins and superadmins.
func (s *ThreadService) ListThreads(caller *models.User, organizationID uint) ([]models.Thread, error) {
	role := roles.Resolve(caller.Role)
	if role == roles.RoleAdmin || role == roles.RoleSuperAdmin {
		return s.repo.ListThreadsForOrganization(organizationID)
	}
	return s.repo.ListThreadsForUser(caller.ID)
}

// GetThread fetches a thread with its ordered messages. Participants may
// always view; admins and superadmins may view any thread.
func (s *ThreadService) GetThread(threadID uint, caller *models.User) (*models.Thread, []models.Message, error) {
	thread, err := s.repo.GetThread(threadID)
	if err != nil {
		return nil, nil, err
	}

	isParticipant, err := s.repo.IsParticipant(threadID, caller.ID)
	if err != nil {
		return nil, nil, err
	}
	role := roles.Resolve(caller.Role)
	if !isParticipant && role != roles.RoleAdmin && role != roles.RoleSuperAdmin {
		return nil, nil, fmt.Errorf("%w: caller may not view this thread", ErrForbidden)
	}

	messages, err := s.repo.ListMessages(threadID)
	if err != nil {
		return nil, nil, err
	}
	return thread, messages, nil
}

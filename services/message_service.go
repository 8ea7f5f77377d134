package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
)

// MessageService creates messages inside a thread and triggers notification
// fan-out as a decoupled side effect.
type MessageService struct {
	repo       ThreadRepository
	dispatcher *NotificationDispatcher

	// syncDispatch makes PostMessage wait for fan-out before returning.
	// Production keeps it false; tests flip it to observe outcomes.
	syncDispatch bool
}

// NewMessageService creates a message service over the repository and
// dispatcher.
func NewMessageService(repo ThreadRepository, dispatcher *NotificationDispatcher) *MessageService {
	return &MessageService{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// SetSyncDispatch toggles synchronous fan-out (testing only).
func (s *MessageService) SetSyncDispatch(sync bool) {
	s.syncDispatch = sync
}

// PostMessage appends a message to a thread. The sender must already be a
// participant; the body must be non-empty after trimming. The message is
// durably stored before notifications are attempted, and no notification
// outcome can fail the post.
func (s *MessageService) PostMessage(threadID, senderID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidArgument)
	}

	isParticipant, err := s.repo.IsParticipant(threadID, senderID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		// Distinguish a missing thread from a non-member caller.
		if _, err := s.repo.GetThread(threadID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: sender is not a participant of this thread", ErrForbidden)
	}

	message := &models.Message{
		ThreadID: threadID,
		SenderID: senderID,
		Body:     body,
	}
	if err := s.repo.CreateMessage(message); err != nil {
		return nil, err
	}

	persisted, err := s.repo.GetMessage(message.ID)
	if err != nil {
		return nil, err
	}

	s.fanOut(persisted)
	return persisted, nil
}

// fanOut hands the committed message to the dispatcher. Any failure here is
// operational noise, never a caller-visible error.
func (s *MessageService) fanOut(message *models.Message) {
	recipients, err := s.repo.ListParticipants(message.ThreadID)
	if err != nil {
		log.Printf("post message %d: list recipients: %v", message.ID, err)
		return
	}
	if s.syncDispatch {
		s.dispatcher.Dispatch(message, recipients)
		return
	}
	go s.dispatcher.Dispatch(message, recipients)
}

// AttachFile records an attachment on a message. The caller must be a
// participant of the message's thread; the file itself was already uploaded
// to blob storage and s3Key is its opaque reference.
func (s *MessageService) AttachFile(messageID, callerID uint, s3Key, fileType, fileName string) (*models.Attachment, error) {
	if s3Key == "" || fileName == "" {
		return nil, fmt.Errorf("%w: file key and name are required", ErrInvalidArgument)
	}

	message, err := s.repo.GetMessage(messageID)
	if err != nil {
		return nil, err
	}

	isParticipant, err := s.repo.IsParticipant(message.ThreadID, callerID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, fmt.Errorf("%w: caller is not a participant of this thread", ErrForbidden)
	}

	attachment := &models.Attachment{
		MessageID: messageID,
		FileS3Key: s3Key,
		FileType:  fileType,
		FileName:  fileName,
	}
	if err := s.repo.CreateAttachment(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

package services

import (
	"github.com/Yasmir01/CRM-Platform-clean-sub004/config"
)

// Messaging bundles the messaging services behind one instance, wired once at
// startup and swappable in tests, mirroring how the S3 service is managed.
type Messaging struct {
	Repo        ThreadRepository
	Threads     *ThreadService
	Messages    *MessageService
	Escalations *EscalationService
	Archives    *ArchiveService
	Reads       *ReadTracker
	Dispatcher  *NotificationDispatcher
}

var messagingInstance *Messaging

// NewMessaging wires the services over the given repository and transports.
func NewMessaging(repo ThreadRepository, email EmailSender, sms SMSSender) *Messaging {
	dispatcher := NewNotificationDispatcher(repo, email, sms)
	messages := NewMessageService(repo, dispatcher)
	return &Messaging{
		Repo:        repo,
		Threads:     NewThreadService(repo, messages),
		Messages:    messages,
		Escalations: NewEscalationService(repo),
		Archives:    NewArchiveService(repo),
		Reads:       NewReadTracker(repo),
		Dispatcher:  dispatcher,
	}
}

// InitMessaging builds the production messaging stack from configuration.
func InitMessaging(cfg *config.Config) *Messaging {
	repo := NewGormThreadRepository(config.GetDB())
	email := NewSendGridEmailService(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail)
	sms := NewTwilioSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	messagingInstance = NewMessaging(repo, email, sms)
	return messagingInstance
}

// GetMessaging returns the wired messaging instance.
func GetMessaging() *Messaging {
	return messagingInstance
}

// SetMessaging sets the messaging instance (primarily for testing).
func SetMessaging(m *Messaging) {
	messagingInstance = m
}

package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
)

const (
	// SMSPreviewLimit caps the SMS body length; longer message bodies are
	// truncated with an ellipsis to control per-message SMS cost.
	SMSPreviewLimit = 100

	emailTimeout = 5 * time.Second
	smsTimeout   = 5 * time.Second
)

// NotificationDispatcher fans a new message out to every other participant
// over the eligible channels, recording an independent outcome row per
// recipient per channel. Delivery is best-effort: a transport failure becomes
// a `failed` row and a log line, never an error for the message's sender.
type NotificationDispatcher struct {
	repo  ThreadRepository
	email EmailSender
	sms   SMSSender
}

// NewNotificationDispatcher creates a dispatcher over the given transports.
func NewNotificationDispatcher(repo ThreadRepository, email EmailSender, sms SMSSender) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo:  repo,
		email: email,
		sms:   sms,
	}
}

// Dispatch delivers message to each recipient concurrently and returns once
// every attempt has been recorded. Recipients are the thread's participants
// minus the sender; callers run Dispatch after the message row is committed.
func (d *NotificationDispatcher) Dispatch(message *models.Message, recipients []models.Participant) {
	var wg sync.WaitGroup
	for i := range recipients {
		recipient := recipients[i]
		if recipient.UserID == message.SenderID {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.notifyRecipient(message, recipient)
		}()
	}
	wg.Wait()
}

// notifyRecipient attempts each channel for one recipient. Channel attempts
// are isolated: one provider outage cannot suppress the others.
func (d *NotificationDispatcher) notifyRecipient(message *models.Message, recipient models.Participant) {
	user := recipient.User
	if user.ID == 0 {
		loaded, err := d.repo.GetUser(recipient.UserID)
		if err != nil {
			log.Printf("notify: load recipient %d for message %d: %v", recipient.UserID, message.ID, err)
			return
		}
		user = *loaded
	}

	// In-app is always attempted and has no delivery failure mode at the
	// application layer; a persistence error here is a storage fault.
	d.record(message.ID, user.ID, models.ChannelInApp, models.NotificationUnread)

	if user.Email != "" && d.email != nil && d.email.IsConfigured() {
		status := models.NotificationSent
		if err := d.sendEmail(message, user); err != nil {
			log.Printf("notify: email to user %d for message %d failed: %v", user.ID, message.ID, err)
			status = models.NotificationFailed
		}
		d.record(message.ID, user.ID, models.ChannelEmail, status)
	}

	if user.Phone != "" && d.sms != nil && d.sms.IsConfigured() {
		status := models.NotificationSent
		if err := d.sendSMS(message, user); err != nil {
			log.Printf("notify: sms to user %d for message %d failed: %v", user.ID, message.ID, err)
			status = models.NotificationFailed
		}
		d.record(message.ID, user.ID, models.ChannelSMS, status)
	}
}

func (d *NotificationDispatcher) sendEmail(message *models.Message, user models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	subject := "New message in your conversation"
	plain := fmt.Sprintf("%s wrote:\n\n%s", message.Sender.Name, message.Body)
	html := fmt.Sprintf("<p><strong>%s</strong> wrote:</p><p>%s</p>", message.Sender.Name, message.Body)
	return d.email.Send(ctx, user.Name, user.Email, subject, plain, html)
}

func (d *NotificationDispatcher) sendSMS(message *models.Message, user models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), smsTimeout)
	defer cancel()

	preview := TruncateForSMS(message.Body)
	body := fmt.Sprintf("%s: %s", message.Sender.Name, preview)
	return d.sms.Send(ctx, user.Phone, body)
}

func (d *NotificationDispatcher) record(messageID, userID uint, channel, status string) {
	notification := &models.Notification{
		MessageID: messageID,
		UserID:    userID,
		Channel:   channel,
		Status:    status,
	}
	if err := d.repo.CreateNotification(notification); err != nil {
		log.Printf("notify: record %s notification for user %d message %d: %v", channel, userID, messageID, err)
	}
}

// TruncateForSMS shortens a message body to the SMS preview limit, appending
// an ellipsis when anything was cut.
func TruncateForSMS(body string) string {
	runes := []rune(body)
	if len(runes) <= SMSPreviewLimit {
		return body
	}
	return string(runes[:SMSPreviewLimit]) + "…"
}

package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender is the outbound email transport. IsConfigured gates whether the
// dispatcher attempts the email channel at all.
type EmailSender interface {
	IsConfigured() bool
	Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error
}

// SendGridEmailService sends transactional email through SendGrid.
type SendGridEmailService struct {
	fromName  string
	fromEmail string
	client    *sendgrid.Client
}

// NewSendGridEmailService creates the SendGrid transport. An empty API key or
// from address leaves the service unconfigured.
func NewSendGridEmailService(apiKey, fromName, fromEmail string) *SendGridEmailService {
	service := &SendGridEmailService{
		fromName:  fromName,
		fromEmail: fromEmail,
	}
	if apiKey != "" {
		service.client = sendgrid.NewSendClient(apiKey)
	}
	return service
}

// IsConfigured returns true if the SendGrid transport can be used.
func (s *SendGridEmailService) IsConfigured() bool {
	return s.client != nil && s.fromEmail != ""
}

// Send delivers one email. The context bounds the API call.
func (s *SendGridEmailService) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email transport not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

package services

import (
	"context"
	"sync"
)

// MockEmailService is a mock implementation of EmailSender for testing
type MockEmailService struct {
	mu         sync.Mutex
	configured bool
	failFor    map[string]error // toEmail -> error to return
	sent       []MockEmail
}

// MockEmail records one delivered email
type MockEmail struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTMLBody  string
}

// NewMockEmailService creates a configured mock email transport
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{
		configured: true,
		failFor:    make(map[string]error),
	}
}

// SetConfigured toggles whether the mock reports itself as configured
func (m *MockEmailService) SetConfigured(configured bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = configured
}

// FailFor makes Send return err for the given recipient address
func (m *MockEmailService) FailFor(toEmail string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFor[toEmail] = err
}

// IsConfigured reports the mock's configured state
func (m *MockEmailService) IsConfigured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configured
}

// Send records the email, or fails if the recipient was registered with FailFor
func (m *MockEmailService) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[toEmail]; ok {
		return err
	}
	m.sent = append(m.sent, MockEmail{
		ToName:    toName,
		ToEmail:   toEmail,
		Subject:   subject,
		PlainText: plainText,
		HTMLBody:  htmlBody,
	})
	return nil
}

// Sent returns a copy of the emails delivered so far
func (m *MockEmailService) Sent() []MockEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

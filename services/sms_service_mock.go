package services

import (
	"context"
	"sync"
)

// MockSMSService is a mock implementation of SMSSender for testing
type MockSMSService struct {
	mu         sync.Mutex
	configured bool
	failFor    map[string]error // phone number -> error to return
	sent       []MockSMS
}

// MockSMS records one delivered SMS
type MockSMS struct {
	To   string
	Body string
}

// NewMockSMSService creates a configured mock SMS transport
func NewMockSMSService() *MockSMSService {
	return &MockSMSService{
		configured: true,
		failFor:    make(map[string]error),
	}
}

// SetConfigured toggles whether the mock reports itself as configured
func (m *MockSMSService) SetConfigured(configured bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = configured
}

// FailFor makes Send return err for the given phone number
func (m *MockSMSService) FailFor(to string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFor[to] = err
}

// IsConfigured reports the mock's configured state
func (m *MockSMSService) IsConfigured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configured
}

// Send records the SMS, or fails if the number was registered with FailFor
func (m *MockSMSService) Send(ctx context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, MockSMS{To: to, Body: body})
	return nil
}

// Sent returns a copy of the messages delivered so far
func (m *MockSMSService) Sent() []MockSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSMS, len(m.sent))
	copy(out, m.sent)
	return out
}

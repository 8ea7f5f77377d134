package services

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender is the outbound SMS transport. IsConfigured gates whether the
// dispatcher attempts the SMS channel at all.
type SMSSender interface {
	IsConfigured() bool
	Send(ctx context.Context, to, body string) error
}

// TwilioSMSService sends SMS through the Twilio Messages API.
type TwilioSMSService struct {
	fromNumber string
	client     *twilio.RestClient
}

// NewTwilioSMSService creates the Twilio transport. Missing credentials or
// from-number leave the service unconfigured.
func NewTwilioSMSService(accountSID, authToken, fromNumber string) *TwilioSMSService {
	service := &TwilioSMSService{fromNumber: fromNumber}
	if accountSID != "" && authToken != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		client.SetTimeout(10 * time.Second)
		service.client = client
	}
	return service
}

// IsConfigured returns true if the Twilio transport can be used.
func (s *TwilioSMSService) IsConfigured() bool {
	return s.client != nil && s.fromNumber != ""
}

// Send delivers one SMS. The Twilio client carries its own HTTP timeout, so a
// hanging provider cannot hold a dispatch goroutine past it.
func (s *TwilioSMSService) Send(ctx context.Context, to, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("sms transport not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom(s.fromNumber)
	params.SetTo(to)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

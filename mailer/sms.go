package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type SMSConfig struct {
	URL      string
	APIKey   string
	SenderID string
}

// SMSSender delivers codes through an HTTP SMS gateway that takes the code
// as a template variable.
type SMSSender struct {
	Generator
	client *resty.Client
	cfg    SMSConfig
}

func NewSMSSender(length int, cfg SMSConfig) *SMSSender {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	return &SMSSender{Generator: Generator{Length: length}, client: client, cfg: cfg}
}

func (s *SMSSender) SendOTP(ctx context.Context, to Recipient, code string, purpose Purpose) error {
	if to.Phone == "" {
		return fmt.Errorf("sms: recipient has no phone number")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"authorization":    s.cfg.APIKey,
			"route":            "dlt",
			"sender_id":        s.cfg.SenderID,
			"message":          string(purpose),
			"variables_values": code,
			"numbers":          to.Phone,
		}).
		Get(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("sms: send otp to %s: %w", to.Phone, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("sms: send otp to %s: status %d", to.Phone, resp.StatusCode())
	}
	return nil
}

package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

type SendGridSender struct {
	Generator
	apiKey string
	host   string
	from   *mail.Email
}

func NewSendGridSender(length int, apiKey, from, fromName string) *SendGridSender {
	return &SendGridSender{
		Generator: Generator{Length: length},
		apiKey:    apiKey,
		host:      sendGridHost,
		from:      mail.NewEmail(fromName, from),
	}
}

func (s *SendGridSender) SendOTP(ctx context.Context, to Recipient, code string, purpose Purpose) error {
	if to.Email == "" {
		return fmt.Errorf("sendgrid: recipient has no email address")
	}

	message := mail.NewSingleEmail(
		s.from,
		subjectFor(purpose),
		mail.NewEmail(to.Name, to.Email),
		plainBody(code, purpose),
		htmlBody(to.Name, code, purpose),
	)

	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: send otp to %s: %w", to.Email, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: send otp to %s: status %d: %s", to.Email, resp.StatusCode, resp.Body)
	}
	return nil
}

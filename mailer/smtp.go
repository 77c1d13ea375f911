package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type SMTPSender struct {
	Generator
	dialer *gomail.Dialer
	from   string
	name   string
}

func NewSMTPSender(length int, cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		Generator: Generator{Length: length},
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:      cfg.From,
		name:      cfg.FromName,
	}
}

func (s *SMTPSender) SendOTP(_ context.Context, to Recipient, code string, purpose Purpose) error {
	if to.Email == "" {
		return fmt.Errorf("smtp: recipient has no email address")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.name)
	m.SetHeader("To", to.Email)
	m.SetHeader("Subject", subjectFor(purpose))
	m.SetBody("text/plain", plainBody(code, purpose))
	m.AddAlternative("text/html", htmlBody(to.Name, code, purpose))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: send otp to %s: %w", to.Email, err)
	}
	return nil
}

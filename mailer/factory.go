package mailer

import (
	"fmt"

	"onboardu/config"

	"go.uber.org/zap"
)

// FromConfig builds the sender selected by MAIL_DRIVER.
func FromConfig(cfg *config.Config, log *zap.Logger) (OTPSender, error) {
	switch cfg.MailDriver {
	case "", "log":
		return NewLogSender(cfg.OTPLength, log), nil
	case "smtp":
		return NewSMTPSender(cfg.OTPLength, SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailName,
		}), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
		}
		return NewSendGridSender(cfg.OTPLength, cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailName), nil
	case "sms":
		if cfg.SMSApiURL == "" {
			return nil, fmt.Errorf("SMS_API_URL is not set")
		}
		return NewSMSSender(cfg.OTPLength, SMSConfig{
			URL:      cfg.SMSApiURL,
			APIKey:   cfg.SMSApiKey,
			SenderID: cfg.SMSSenderID,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported MAIL_DRIVER %q", cfg.MailDriver)
	}
}

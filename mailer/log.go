package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes codes to the log instead of delivering them. Meant for
// local development.
type LogSender struct {
	Generator
	log *zap.Logger
}

func NewLogSender(length int, log *zap.Logger) *LogSender {
	return &LogSender{Generator: Generator{Length: length}, log: log}
}

func (s *LogSender) SendOTP(_ context.Context, to Recipient, code string, purpose Purpose) error {
	s.log.Info("otp issued",
		zap.String("purpose", string(purpose)),
		zap.String("email", to.Email),
		zap.String("phone", to.Phone),
		zap.String("otp", code),
	)
	return nil
}

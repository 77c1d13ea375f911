// Package mailer delivers one-time codes. A single OTPSender is built at
// startup and handed to the services that issue codes.
package mailer

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

type Purpose string

const (
	PurposeEmail Purpose = "email"
	PurposeGST   Purpose = "gst"
)

// Recipient is whoever receives the code. Email drivers use Email, the SMS
// driver uses Phone.
type Recipient struct {
	Name  string
	Email string
	Phone string
}

type OTPSender interface {
	GenerateOTP() string
	SendOTP(ctx context.Context, to Recipient, code string, purpose Purpose) error
}

// Generator produces numeric codes of a fixed length.
type Generator struct {
	Length int
}

// GenerateOTP generates a numeric OTP from crypto/rand.
func (g Generator) GenerateOTP() string {
	n := g.Length
	if n <= 0 {
		n = 6
	}
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits)
}

func subjectFor(purpose Purpose) string {
	if purpose == PurposeGST {
		return "OTP for GST Verification"
	}
	return "OTP for Email Verification"
}

func htmlBody(name, code string, purpose Purpose) string {
	what := "email address"
	if purpose == PurposeGST {
		what = "GST details"
	}
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">Use this code to verify your %s:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, name, what, code)
}

func plainBody(code string, purpose Purpose) string {
	if purpose == PurposeGST {
		return fmt.Sprintf("Your GST verification code is %s. Do not share this OTP with anyone.", code)
	}
	return fmt.Sprintf("Your email verification code is %s. Do not share this OTP with anyone.", code)
}

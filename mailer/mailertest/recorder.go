// Package mailertest provides an in-memory OTPSender for tests.
package mailertest

import (
	"context"
	"fmt"
	"sync"

	"onboardu/mailer"
)

type Sent struct {
	To      mailer.Recipient
	Code    string
	Purpose mailer.Purpose
}

// Recorder hands out sequential six digit codes and keeps every delivery.
// Setting Err makes SendOTP fail.
type Recorder struct {
	mu   sync.Mutex
	n    int
	sent []Sent
	Err  error
}

func (r *Recorder) GenerateOTP() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return fmt.Sprintf("%06d", 100000+r.n)
}

func (r *Recorder) SendOTP(_ context.Context, to mailer.Recipient, code string, purpose mailer.Purpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, Sent{To: to, Code: code, Purpose: purpose})
	return nil
}

// Sent returns a copy of every delivery so far.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}

// Last returns the most recent delivery; ok is false when nothing was sent.
func (r *Recorder) Last() (Sent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Sent{}, false
	}
	return r.sent[len(r.sent)-1], true
}

package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"onboardu/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGenerateOTP(t *testing.T) {
	for _, n := range []int{4, 6, 8} {
		code := Generator{Length: n}.GenerateOTP()
		assert.Len(t, code, n)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", code)
		}
	}
	assert.Len(t, Generator{}.GenerateOTP(), 6)
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSender(6, zap.New(core))

	err := s.SendOTP(context.Background(), Recipient{Email: "a@b.c"}, "123456", PurposeGST)
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "gst", fields["purpose"])
	assert.Equal(t, "123456", fields["otp"])
}

func TestSMSSender(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSMSSender(6, SMSConfig{URL: srv.URL, APIKey: "key", SenderID: "ONBRDU"})
	err := s.SendOTP(context.Background(), Recipient{Phone: "9876543210"}, "654321", PurposeEmail)
	require.NoError(t, err)

	assert.Equal(t, "key", query["authorization"])
	assert.Equal(t, "9876543210", query["numbers"])
	assert.Equal(t, "654321", query["variables_values"])
}

func TestSMSSenderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSMSSender(6, SMSConfig{URL: srv.URL})
	assert.Error(t, s.SendOTP(context.Background(), Recipient{Phone: "9876543210"}, "1", PurposeEmail))
	assert.Error(t, s.SendOTP(context.Background(), Recipient{}, "1", PurposeEmail))
}

func TestSendGridSender(t *testing.T) {
	var auth string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender(6, "sg-key", "no-reply@onboardu.local", "OnBoardU")
	s.host = srv.URL

	err := s.SendOTP(context.Background(), Recipient{Name: "Asha", Email: "asha@example.com"}, "111222", PurposeEmail)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sg-key", auth)
	assert.Equal(t, "OTP for Email Verification", payload["subject"])
}

func TestSendGridSenderRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSendGridSender(6, "bad", "no-reply@onboardu.local", "OnBoardU")
	s.host = srv.URL

	assert.Error(t, s.SendOTP(context.Background(), Recipient{Email: "asha@example.com"}, "1", PurposeEmail))
}

func TestFromConfig(t *testing.T) {
	log := zap.NewNop()

	s, err := FromConfig(&config.Config{MailDriver: "log", OTPLength: 6}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = FromConfig(&config.Config{MailDriver: "smtp", OTPLength: 6, SMTPHost: "localhost", SMTPPort: 25}, log)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = FromConfig(&config.Config{MailDriver: "sendgrid"}, log)
	assert.Error(t, err)

	_, err = FromConfig(&config.Config{MailDriver: "pigeon"}, log)
	assert.Error(t, err)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/mail"
	"github.com/arimasna/pelajarin/internal/pkg/sms"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  auth:
    default_language: "en"
email:
  sender: "no-reply@pelajarin.test"
`

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type recordingMail struct {
	mu   sync.Mutex
	sent []mail.Message
	fail bool
}

func (m *recordingMail) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []sms.Message
}

func (s *recordingSMS) Send(_ context.Context, msg sms.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *recordingMail, *recordingSMS, *fakeClock) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator.NewV10Validator() error = %v", err)
	}

	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	rm := &recordingMail{}
	rs := &recordingSMS{}

	uc := New(Dependency{
		RepoMail:   rm,
		RepoSMS:    rs,
		Config:     cfg,
		Clock:      clk,
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, rm, rs, clk
}

func validInput(clk *fakeClock) ConsumeOTPIssuedInput {
	return ConsumeOTPIssuedInput{
		UserID:      7,
		Identifier:  "student@example.com",
		Destination: "student@example.com",
		Method:      "email",
		Code:        "123456",
		Language:    "en",
		ExpiresAt:   clk.Now().Add(5 * time.Minute),
	}
}

func TestConsumeOTPIssued_EmailEnglish(t *testing.T) {
	// Arrange
	uc, rm, _, clk := newTestUsecase(t)

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), validInput(clk))

	// Assert
	if err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(rm.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(rm.sent))
	}

	msg := rm.sent[0]
	if msg.To[0] != "student@example.com" {
		t.Fatalf("To = %q, want destination", msg.To[0])
	}
	if msg.Subject != "Your verification code" {
		t.Fatalf("Subject = %q, want english subject", msg.Subject)
	}
	if !strings.Contains(msg.TextBody, "123456") {
		t.Fatalf("TextBody %q does not contain the code", msg.TextBody)
	}
	if !strings.Contains(msg.TextBody, "5 minutes") {
		t.Fatalf("TextBody %q does not mention expiry", msg.TextBody)
	}
	if !strings.Contains(msg.HTMLBody, "<strong>123456</strong>") {
		t.Fatalf("HTMLBody %q does not contain the code", msg.HTMLBody)
	}
}

func TestConsumeOTPIssued_SMSIndonesian(t *testing.T) {
	// Arrange
	uc, rm, rs, clk := newTestUsecase(t)

	in := validInput(clk)
	in.Method = "phone"
	in.Destination = "+628123456789"
	in.Language = "id"

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(rm.sent) != 0 {
		t.Fatalf("sent %d emails, want 0", len(rm.sent))
	}
	if len(rs.sent) != 1 {
		t.Fatalf("sent %d sms, want 1", len(rs.sent))
	}

	msg := rs.sent[0]
	if msg.To != "+628123456789" {
		t.Fatalf("To = %q, want phone number", msg.To)
	}
	if !strings.Contains(msg.Body, "123456") {
		t.Fatalf("Body %q does not contain the code", msg.Body)
	}
	if !strings.Contains(msg.Body, "kode verifikasi") {
		t.Fatalf("Body %q is not indonesian", msg.Body)
	}
}

func TestConsumeOTPIssued_UnknownLanguageFallsBack(t *testing.T) {
	// Arrange
	uc, rm, _, clk := newTestUsecase(t)

	in := validInput(clk)
	in.Language = ""

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(rm.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(rm.sent))
	}
	if rm.sent[0].Subject != "Your verification code" {
		t.Fatalf("Subject = %q, want english fallback", rm.sent[0].Subject)
	}
}

func TestConsumeOTPIssued_ExpiredCodeSkipped(t *testing.T) {
	// Arrange
	uc, rm, _, clk := newTestUsecase(t)

	in := validInput(clk)
	in.ExpiresAt = clk.Now().Add(-time.Minute)

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(rm.sent) != 0 {
		t.Fatalf("sent %d emails, want 0 for an expired code", len(rm.sent))
	}
}

func TestConsumeOTPIssued_MalformedEventDropped(t *testing.T) {
	// Arrange
	uc, rm, rs, clk := newTestUsecase(t)

	in := validInput(clk)
	in.Code = "12"

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), in)

	// Assert: invalid payloads are logged and dropped, never retried.
	if err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(rm.sent) != 0 || len(rs.sent) != 0 {
		t.Fatal("malformed event must not send anything")
	}
}

func TestConsumeOTPIssued_SendFailurePropagates(t *testing.T) {
	// Arrange
	uc, rm, _, clk := newTestUsecase(t)
	rm.fail = true

	// Act
	err := uc.ConsumeOTPIssued(context.Background(), validInput(clk))

	// Assert: transport failures bubble up so the broker can redeliver.
	if err == nil {
		t.Fatal("ConsumeOTPIssued() error = nil, want send failure")
	}
}

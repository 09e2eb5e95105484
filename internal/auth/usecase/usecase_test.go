package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arimasna/pelajarin/internal/auth/outbound/credstore"
	"github.com/arimasna/pelajarin/internal/auth/outbound/otpstore"
	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
	"github.com/arimasna/pelajarin/internal/pkg/hash"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/jwt"
	"github.com/arimasna/pelajarin/internal/pkg/keylock"
	"github.com/arimasna/pelajarin/internal/pkg/otp"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 5
    default_language: "en"
    landings: "student:/dashboard,instructor:/teach,admin:/admin"
`

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []OTPIssuedEvent
	fail   bool
}

func (p *recordingPublisher) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, msg)
	return nil
}

func (p *recordingPublisher) last(t *testing.T) OTPIssuedEvent {
	t.Helper()

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == 0 {
		t.Fatal("no published events")
	}
	return p.events[len(p.events)-1]
}

type testHarness struct {
	uc    *Usecase
	creds *credstore.Memory
	otps  *otpstore.Memory
	pub   *recordingPublisher
	clock *fakeClock
}

func newTestHarness(t *testing.T) *testHarness {
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

	snow, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("uid.NewSnowflake() error = %v", err)
	}

	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "pelajarin-test",
		Audiences: []string{"pelajarin-web"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("jwt.NewHS512() error = %v", err)
	}

	creds := credstore.NewMemory()
	otps := otpstore.NewMemory()
	pub := &recordingPublisher{}

	uc := New(Dependency{
		RepoCred:      creds,
		RepoOTP:       otps,
		RepoMessaging: pub,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        hash.NewBcrypt(4, ""),
		OTPGen:        otp.NewNumeric(),
		UID:           snow,
		Clock:         clk,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
		KeyLock:       keylock.New(),
	})

	return &testHarness{uc: uc, creds: creds, otps: otps, pub: pub, clock: clk}
}

// registerUser creates a student account and returns its id plus the code
// that was handed to the delivery pipeline.
func (h *testHarness) registerUser(t *testing.T, email string) (int64, string) {
	t.Helper()

	out, err := h.uc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "Secret123!",
		FullName: "Test Student",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	return out.User.ID, h.pub.last(t).Code
}

// wrongCode returns a valid-looking code different from the given one.
func wrongCode(code string) string {
	if code == "123456" {
		return "654321"
	}
	return "123456"
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if gerr.StatusCode() != want {
		t.Fatalf("StatusCode() = %d, want %d; err = %v", gerr.StatusCode(), want, err)
	}
}

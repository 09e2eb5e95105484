package usecase

import (
	"context"
	"time"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/clock"
	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/hash"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/jwt"
	"github.com/arimasna/pelajarin/internal/pkg/keylock"
	"github.com/arimasna/pelajarin/internal/pkg/otp"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPIssuedEvent is what the auth module publishes when a code is issued.
type OTPIssuedEvent struct {
	UserID      int64
	Identifier  string
	Destination string
	Method      string
	Code        string
	Language    string
	ExpiresAt   time.Time
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoCred interface {
	Create(ctx context.Context, cred entity.Credential) error
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	GetByID(ctx context.Context, id int64) (*entity.Credential, error)
}

type repoOTP interface {
	Save(ctx context.Context, rec entity.OTPRecord) error
	Find(ctx context.Context, identifier string) (*entity.OTPRecord, error)
	AddAttempt(ctx context.Context, identifier string) (int, error)
	Delete(ctx context.Context, identifier string) error
}

type Usecase struct {
	repoCred      repoCred
	repoOTP       repoOTP
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	otpGen        otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	keylock       *keylock.KeyLock
}

type Dependency struct {
	RepoCred      repoCred
	RepoOTP       repoOTP
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	OTPGen        otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	KeyLock       *keylock.KeyLock
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoCred:      dep.RepoCred,
		repoOTP:       dep.RepoOTP,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		otpGen:        dep.OTPGen,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		keylock:       dep.KeyLock,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

package auth

import (
	"github.com/arimasna/pelajarin/internal/auth/inbound"
	"github.com/arimasna/pelajarin/internal/auth/outbound/credstore"
	"github.com/arimasna/pelajarin/internal/auth/outbound/mq"
	"github.com/arimasna/pelajarin/internal/auth/outbound/otpstore"
	"github.com/arimasna/pelajarin/internal/auth/usecase"
	"github.com/arimasna/pelajarin/internal/pkg/clock"
	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/hash"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/jwt"
	"github.com/arimasna/pelajarin/internal/pkg/keylock"
	"github.com/arimasna/pelajarin/internal/pkg/messaging"
	"github.com/arimasna/pelajarin/internal/pkg/otp"
	"github.com/arimasna/pelajarin/internal/pkg/router"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	CacheConn  *redis.Client
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTPGen     otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoCred, err := credstore.NewFromDriver(dep.Config.GetString("modules.auth.credential_store"), credstore.FactoryOptions{
		DBConn:     dep.DBConn,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	repoOTP, err := otpstore.NewFromDriver(dep.Config.GetString("modules.auth.otp_store"), otpstore.FactoryOptions{
		RedisClient: dep.CacheConn,
		Retention:   dep.Config.GetHour("modules.auth.otp_retention_hours"),
		Instrument:  dep.Instrument,
	})
	if err != nil {
		return err
	}

	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoCred:      repoCred,
		RepoOTP:       repoOTP,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		OTPGen:        dep.OTPGen,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		KeyLock:       keylock.New(),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

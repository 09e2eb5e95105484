package app

import (
	"context"
	"net/http"

	"github.com/arimasna/pelajarin/internal/pkg/clock"
	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/goroutine"
	"github.com/arimasna/pelajarin/internal/pkg/hash"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/jwt"
	"github.com/arimasna/pelajarin/internal/pkg/mail"
	"github.com/arimasna/pelajarin/internal/pkg/messaging"
	"github.com/arimasna/pelajarin/internal/pkg/otp"
	"github.com/arimasna/pelajarin/internal/pkg/router"
	"github.com/arimasna/pelajarin/internal/pkg/sms"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otpGen    otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	sms       sms.SMS
	messaging messaging.Messaging
	casbin    *casbin.Enforcer

	// server
	gate       *router.Gate
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initMessaging()
	app.initCasbin()
	app.initGate()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

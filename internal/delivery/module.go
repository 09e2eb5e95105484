package delivery

import (
	"context"

	"github.com/arimasna/pelajarin/internal/delivery/inbound"
	"github.com/arimasna/pelajarin/internal/delivery/outbound/email"
	"github.com/arimasna/pelajarin/internal/delivery/outbound/smsgw"
	"github.com/arimasna/pelajarin/internal/delivery/usecase"
	"github.com/arimasna/pelajarin/internal/pkg/clock"
	"github.com/arimasna/pelajarin/internal/pkg/config"
	"github.com/arimasna/pelajarin/internal/pkg/goroutine"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/mail"
	"github.com/arimasna/pelajarin/internal/pkg/messaging"
	"github.com/arimasna/pelajarin/internal/pkg/sms"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
	SMS        sms.SMS
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)
	repoSMS := smsgw.New(dep.SMS, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoMail:   repoMail,
		RepoSMS:    repoSMS,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}

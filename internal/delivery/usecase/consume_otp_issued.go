package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"text/template"
	"time"

	"github.com/arimasna/pelajarin/internal/pkg/mail"
	"github.com/arimasna/pelajarin/internal/pkg/sms"
)

const (
	languageEnglish    = "en"
	languageIndonesian = "id"
)

type messageTemplate struct {
	subject  string
	email    string
	sms      string
	htmlBody string
}

var templates = map[string]messageTemplate{
	languageEnglish: {
		subject: "Your verification code",
		email: "Hi,\n\nYour verification code is {{.code}}. " +
			"It expires in {{.minutes}} minutes.\n\n" +
			"If you did not request this code, you can ignore this message.\n",
		sms: "{{.code}} is your verification code. It expires in {{.minutes}} minutes.",
		htmlBody: "<p>Hi,</p><p>Your verification code is <strong>{{.code}}</strong>. " +
			"It expires in {{.minutes}} minutes.</p>" +
			"<p>If you did not request this code, you can ignore this message.</p>",
	},
	languageIndonesian: {
		subject: "Kode verifikasi Anda",
		email: "Halo,\n\nKode verifikasi Anda adalah {{.code}}. " +
			"Kode berlaku selama {{.minutes}} menit.\n\n" +
			"Abaikan pesan ini jika Anda tidak meminta kode.\n",
		sms: "{{.code}} adalah kode verifikasi Anda. Berlaku selama {{.minutes}} menit.",
		htmlBody: "<p>Halo,</p><p>Kode verifikasi Anda adalah <strong>{{.code}}</strong>. " +
			"Kode berlaku selama {{.minutes}} menit.</p>" +
			"<p>Abaikan pesan ini jika Anda tidak meminta kode.</p>",
	},
}

type ConsumeOTPIssuedInput struct {
	UserID      int64  `validate:"required,gt=0"`
	Identifier  string `validate:"required,email"`
	Destination string `validate:"required"`
	Method      string `validate:"required,oneof=email phone"`
	Code        string `validate:"required,len=6,numeric"`
	Language    string `validate:"omitempty,oneof=en id"`
	ExpiresAt   time.Time
}

// ConsumeOTPIssued renders the one-time code into the account's language and
// sends it over the requested channel. Validation failures are logged and
// dropped; redelivering a malformed event cannot fix it.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	if s.clock.Now().After(in.ExpiresAt) {
		slog.WarnContext(ctx, "one-time code already expired, skipping send",
			"user_id", in.UserID, "expires_at", in.ExpiresAt)
		return nil
	}

	tpl, ok := templates[in.Language]
	if !ok {
		tpl = templates[s.cfg.GetString("modules.auth.default_language")]
	}

	data := map[string]any{
		"code":    in.Code,
		"minutes": s.expiryMinutes(in.ExpiresAt),
	}

	if in.Method == "phone" {
		return s.sendSMS(ctx, in.Destination, tpl, data)
	}

	return s.sendEmail(ctx, in.Destination, tpl, data)
}

func (s *Usecase) sendEmail(ctx context.Context, to string, tpl messageTemplate, data map[string]any) error {
	text, err := s.renderTemplate("email_text", tpl.email, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email text template", "error", err)
		return nil
	}

	html, err := s.renderTemplate("email_html", tpl.htmlBody, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email html template", "error", err)
		return nil
	}

	msg := mail.Message{
		From:     s.cfg.GetString("email.sender"),
		To:       []string{to},
		Subject:  tpl.subject,
		TextBody: text,
		HTMLBody: html,
	}
	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send one-time code email", "to", to, "error", err)
		return err
	}

	return nil
}

func (s *Usecase) sendSMS(ctx context.Context, to string, tpl messageTemplate, data map[string]any) error {
	body, err := s.renderTemplate("sms_body", tpl.sms, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render sms template", "error", err)
		return nil
	}

	if err := s.repoSMS.Send(ctx, sms.Message{To: to, Body: body}); err != nil {
		slog.ErrorContext(ctx, "failed to send one-time code sms", "to", to, "error", err)
		return err
	}

	return nil
}

func (s *Usecase) expiryMinutes(expiresAt time.Time) int {
	minutes := int(expiresAt.Sub(s.clock.Now()).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

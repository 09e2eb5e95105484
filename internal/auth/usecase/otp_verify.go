package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Identifier string `validate:"required,email"`
	OTP        string `validate:"required,len=6,numeric"`
	Type       string `validate:"omitempty,oneof=email phone"`
}

type VerifyOTPOutput struct {
	VerificationToken string
	UserID            int64
	Role              string
}

// VerifyOTP checks a submitted code against the pending record for the
// identifier and, on success, issues the verification token.
//
// The whole read-modify-write runs under a per-identifier lock so concurrent
// submissions for the same identifier serialize. Outcome order: a missing
// record wins, then the attempt ceiling, then expiry, then the hash check.
// Any terminal outcome removes the record; only a plain mismatch keeps it.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Identifier = strings.TrimSpace(strings.ToLower(in.Identifier))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	s.keylock.Lock(in.Identifier)
	defer s.keylock.Unlock(in.Identifier)

	rec, err := s.repoOTP.Find(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("no pending code for this identifier", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find otp record", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if rec.Attempts >= entity.MaxOTPAttempts {
		s.discardOTP(ctx, in.Identifier)
		slog.WarnContext(ctx, "otp attempt ceiling reached", "user_id", rec.UserID)
		return nil, goerror.NewBusiness("too many failed attempts, request a new code", goerror.CodeUnauthorized)
	}

	if s.clock.Now().After(rec.ExpiresAt) {
		s.discardOTP(ctx, in.Identifier)
		return nil, goerror.NewBusiness("code has expired, request a new code", goerror.CodeUnauthorized)
	}

	if !s.bcrypt.Verify(rec.CodeHash, in.OTP) {
		if _, err := s.repoOTP.AddAttempt(ctx, in.Identifier); err != nil && !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo add otp attempt", "identifier", in.Identifier, "error", err)
			return nil, goerror.NewServer(err)
		}
		return nil, goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}

	s.discardOTP(ctx, in.Identifier)

	cred, err := s.repoCred.GetByID(ctx, rec.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential by id", "user_id", rec.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(cred.ID, cred.Email, cred.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification jwt token", "user_id", cred.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{
		VerificationToken: token,
		UserID:            cred.ID,
		Role:              cred.Role.String(),
	}, nil
}

func (s *Usecase) discardOTP(ctx context.Context, identifier string) {
	if err := s.repoOTP.Delete(ctx, identifier); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete otp record", "identifier", identifier, "error", err)
	}
}

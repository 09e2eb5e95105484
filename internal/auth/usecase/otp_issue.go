package usecase

import (
	"context"
	"log/slog"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

// issueOTP generates a fresh code for the account, stores its hash and hands
// the plaintext to the delivery pipeline. Re-issuing replaces any pending
// code and resets the attempt counter.
//
// The returned bool reports whether the delivery event was accepted by the
// broker; issuance itself never fails because of delivery.
func (s *Usecase) issueOTP(ctx context.Context, cred *entity.Credential, method entity.OTPMethod) (bool, error) {
	code, err := s.otpGen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", cred.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	codeHash, err := s.bcrypt.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", cred.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetMinute("modules.auth.otp_ttl_minutes"))

	if err := s.repoOTP.Save(ctx, entity.OTPRecord{
		Identifier: cred.Email,
		UserID:     cred.ID,
		CodeHash:   string(codeHash),
		Method:     method,
		ExpiresAt:  expiresAt,
		Attempts:   0,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo save otp record", "user_id", cred.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	destination := cred.Email
	if method == entity.OTPMethodPhone {
		destination = cred.Phone
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		UserID:      cred.ID,
		Identifier:  cred.Email,
		Destination: destination,
		Method:      method.String(),
		Code:        code,
		Language:    cred.Language,
		ExpiresAt:   expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", cred.ID, "error", err)
		return false, nil
	}

	return true, nil
}

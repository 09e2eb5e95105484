package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

type ResendOTPInput struct {
	UserID int64  `validate:"required,gt=0"`
	Method string `validate:"required,oneof=email phone"`
}

type ResendOTPOutput struct {
	Delivered bool
}

// ResendOTP issues a fresh code for the account, replacing any pending one.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*ResendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, err := s.repoCred.GetByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "user_id", in.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential by id", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	method := entity.OTPMethodFromString(in.Method)
	if method == entity.OTPMethodPhone && cred.Phone == "" {
		return nil, goerror.NewInvalidInputFields("method", "account has no phone number")
	}

	delivered, err := s.issueOTP(ctx, cred, method)
	if err != nil {
		return nil, err
	}

	return &ResendOTPOutput{Delivered: delivered}, nil
}

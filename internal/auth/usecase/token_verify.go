package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

type VerifyTokenInput struct {
	Token string `validate:"required"`
}

type VerifyTokenOutput struct {
	UserID   int64
	Email    string
	FullName string
	Role     string
}

// VerifyToken checks a submitted token and resolves the identity it refers
// to. A valid signature over an account that no longer exists is still
// rejected.
func (s *Usecase) VerifyToken(ctx context.Context, in VerifyTokenInput) (*VerifyTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.jwt.Verify(in.Token)
	if err != nil {
		slog.WarnContext(ctx, "token verification failed", "error", err)
		return nil, goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
	}

	cred, err := s.repoCred.GetByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "token references a missing account", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyTokenOutput{
		UserID:   cred.ID,
		Email:    cred.Email,
		FullName: cred.FullName,
		Role:     cred.Role.String(),
	}, nil
}

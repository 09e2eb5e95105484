package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arimasna/pelajarin/internal/pkg/goerror"
	"github.com/arimasna/pelajarin/internal/pkg/jwt"
)

type ProfileOutput struct {
	UserID    int64
	Email     string
	Phone     string
	FullName  string
	Role      string
	Language  string
	CreatedAt time.Time
}

// Profile returns the stored account for the authenticated user.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	cred, err := s.repoCred.GetByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account for valid token no longer exists", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		UserID:    cred.ID,
		Email:     cred.Email,
		Phone:     cred.Phone,
		FullName:  cred.FullName,
		Role:      cred.Role.String(),
		Language:  cred.Language,
		CreatedAt: cred.CreatedAt,
	}, nil
}

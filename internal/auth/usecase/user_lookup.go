package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

type UserLookupInput struct {
	Email string `validate:"required,email"`
}

type UserLookupOutput struct {
	UserID    int64
	Email     string
	FullName  string
	Role      string
	CreatedAt time.Time
}

// UserLookup returns the account behind an email. The route is restricted to
// administrators by the gate's policy; no extra check happens here.
func (s *Usecase) UserLookup(ctx context.Context, in UserLookupInput) (*UserLookupOutput, error) {
	ctx, span := s.startSpan(ctx, "UserLookup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, err := s.repoCred.GetByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserLookupOutput{
		UserID:    cred.ID,
		Email:     cred.Email,
		FullName:  cred.FullName,
		Role:      cred.Role.String(),
		CreatedAt: cred.CreatedAt,
	}, nil
}

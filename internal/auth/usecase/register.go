package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=5,max=100,alphaspace"`
	Phone    string `validate:"omitempty,e164"`
	Role     string `validate:"required,oneof=student instructor"`
	Language string `validate:"omitempty,oneof=en id"`
}

type RegisterOutput struct {
	Token     string
	User      entity.Credential
	Delivered bool
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Language == "" {
		in.Language = s.cfg.GetString("modules.auth.default_language")
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoCred.GetByEmail(ctx, in.Email); err == nil {
		return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get credential by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	cred := entity.Credential{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		Phone:     in.Phone,
		FullName:  in.FullName,
		Password:  string(hashedPassword),
		Role:      entity.RoleFromString(in.Role),
		Language:  in.Language,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoCred.Create(ctx, cred); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create credential", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	delivered, err := s.issueOTP(ctx, &cred, entity.OTPMethodEmail)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(cred.ID, cred.Email, cred.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", cred.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	cred.Password = ""

	return &RegisterOutput{Token: token, User: cred, Delivered: delivered}, nil
}

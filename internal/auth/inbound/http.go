package inbound

import (
	"context"

	"github.com/arimasna/pelajarin/internal/auth/usecase"
	"github.com/arimasna/pelajarin/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.ResendOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)

	VerifyToken(ctx context.Context, in usecase.VerifyTokenInput) (*usecase.VerifyTokenOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	UserLookup(ctx context.Context, in usecase.UserLookupInput) (*usecase.UserLookupOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Sign-in flow (for unauthenticated visitors; the gate redirects
	// authenticated callers to their landing page)
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/resend-otp", end.ResendOTP)
	r.POST("/api/v1/auth/verify-otp", end.VerifyOTP)

	// Token introspection (token travels in the body, so the route is open)
	r.POST("/api/v1/auth/verify", end.VerifyToken)

	// Session introspection (need authenticated)
	r.GET("/api/v1/auth/profile", end.Profile)

	// Directory (need authenticated & authorization)
	r.GET("/api/v1/auth/users/:email", end.UserLookup)
}

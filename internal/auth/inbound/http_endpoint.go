package inbound

import (
	"github.com/arimasna/pelajarin/internal/auth/usecase"
	"github.com/arimasna/pelajarin/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the sign-in and account workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account and triggers the first verification code.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		AccessToken: resp.Token,
		User: UserResponse{
			ID:       resp.User.ID,
			Email:    resp.User.Email,
			FullName: resp.User.FullName,
			Role:     resp.User.Role.String(),
		},
		Delivered: resp.Delivered,
	}, nil
}

// Login checks credentials and returns the session token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.Token,
		User: UserResponse{
			ID:       resp.User.ID,
			Email:    resp.User.Email,
			FullName: resp.User.FullName,
			Role:     resp.User.Role.String(),
		},
	}, nil
}

// ResendOTP issues a fresh verification code over the requested channel.
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{
		UserID: req.UserID,
		Method: req.Method,
	})
	if err != nil {
		return nil, err
	}

	return ResendOTPResponse{Delivered: resp.Delivered}, nil
}

// VerifyOTP exchanges a valid verification code for a verification token.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Identifier: req.Identifier,
		OTP:        req.OTP,
		Type:       req.Type,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success:           true,
		VerificationToken: resp.VerificationToken,
	}, nil
}

// VerifyToken resolves the identity behind a submitted token.
func (h *HTTPEndpoint) VerifyToken(r *router.Request) (any, error) {
	var req VerifyTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyToken(r.Context(), usecase.VerifyTokenInput{Token: req.Token})
	if err != nil {
		return nil, err
	}

	return VerifyTokenResponse{
		User: UserResponse{
			ID:       resp.UserID,
			Email:    resp.Email,
			FullName: resp.FullName,
			Role:     resp.Role,
		},
	}, nil
}

// Profile returns the authenticated user's account details.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		UserID:    resp.UserID,
		Email:     resp.Email,
		Phone:     resp.Phone,
		FullName:  resp.FullName,
		Role:      resp.Role,
		Language:  resp.Language,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// UserLookup returns the account behind an email address.
func (h *HTTPEndpoint) UserLookup(r *router.Request) (any, error) {
	resp, err := h.uc.UserLookup(r.Context(), usecase.UserLookupInput{
		Email: r.GetParam("email"),
	})
	if err != nil {
		return nil, err
	}

	return UserLookupResponse{
		UserID:    resp.UserID,
		Email:     resp.Email,
		FullName:  resp.FullName,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	}, nil
}

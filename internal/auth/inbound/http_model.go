package inbound

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Language string `json:"language,omitempty"`
}

// UserResponse is the account shape returned by the sign-in endpoints. The
// password hash never leaves the store boundary.
type UserResponse struct {
	ID       int64  `json:"id,string"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	AccessToken string       `json:"token"`
	User        UserResponse `json:"user"`
	Delivered   bool         `json:"otp_delivered"`
}

func (RegisterResponse) Message() string {
	return "Registration successful. We sent a verification code to your email."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"token"`
	User        UserResponse `json:"user"`
}

func (LoginResponse) Message() string {
	return "Login successful."
}

type ResendOTPRequest struct {
	UserID int64  `json:"userId,string"`
	Method string `json:"method"`
}

type ResendOTPResponse struct {
	Delivered bool `json:"otp_delivered"`
}

func (ResendOTPResponse) Message() string {
	return "A new verification code has been sent."
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
	Type       string `json:"type"`
}

type VerifyOTPResponse struct {
	Success           bool   `json:"success"`
	VerificationToken string `json:"verification_token"`
}

func (VerifyOTPResponse) Message() string {
	return "Verification successful."
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type VerifyTokenResponse struct {
	User UserResponse `json:"user"`
}

type ProfileResponse struct {
	UserID    int64     `json:"user_id,string"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

type UserLookupResponse struct {
	UserID    int64     `json:"user_id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

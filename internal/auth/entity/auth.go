package entity

import "time"

// Credential is a stored account: identity fields plus the password hash.
type Credential struct {
	ID        int64
	Email     string
	Phone     string
	FullName  string
	Password  string // hashed
	Role      Role
	Language  string
	CreatedAt time.Time
}

// OTPRecord is the stored state of a pending one-time code for an identifier.
//
// Only the bcrypt hash of the code is stored. Attempts counts failed
// verifications; the record is removed once verified, expired or exhausted.
type OTPRecord struct {
	Identifier string
	UserID     int64
	CodeHash   string
	Method     OTPMethod
	ExpiresAt  time.Time
	Attempts   int
}

// MaxOTPAttempts is the failed-verification ceiling per pending code.
const MaxOTPAttempts = 3

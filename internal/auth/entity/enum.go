package entity

// Role classifies an account for authorization and landing redirects.
type Role int16

const (
	RoleUnknown    Role = 0
	RoleStudent    Role = 1
	RoleInstructor Role = 2
	RoleAdmin      Role = 3
)

func RoleFromString(str string) Role {
	switch str {
	case "student":
		return RoleStudent
	case "instructor":
		return RoleInstructor
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleInstructor:
		return "instructor"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return false
	default:
		return true
	}
}

// OTPMethod selects the channel a one-time code is delivered over.
type OTPMethod int16

const (
	OTPMethodUnknown OTPMethod = 0
	OTPMethodEmail   OTPMethod = 1
	OTPMethodPhone   OTPMethod = 2
)

func OTPMethodFromString(str string) OTPMethod {
	switch str {
	case "email":
		return OTPMethodEmail
	case "phone":
		return OTPMethodPhone
	default:
		return OTPMethodUnknown
	}
}

func (m OTPMethod) String() string {
	switch m {
	case OTPMethodEmail:
		return "email"
	case OTPMethodPhone:
		return "phone"
	default:
		return "unknown"
	}
}

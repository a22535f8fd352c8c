package entity

import "time"

// OTPPurpose tags why a one-time password was issued. It doubles as the
// email template name.
type OTPPurpose string

const (
	PurposeVerification OTPPurpose = "verification"
	PurposeReset        OTPPurpose = "reset"
)

// OTP is a single-use verification code bound to an email address.
type OTP struct {
	Email     string     `json:"email"`
	Code      string     `json:"code"`
	Purpose   OTPPurpose `json:"purpose"`
	CreatedAt time.Time  `json:"created_at"`
}

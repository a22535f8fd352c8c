package repository

import (
	"context"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
)

// OTPStore keeps the active one-time password per email.
type OTPStore interface {
	// Save replaces any code already stored for otp.Email.
	Save(ctx context.Context, otp entity.OTP) error
	// Match reports whether code is the active code for email and was
	// issued for purpose.
	Match(ctx context.Context, email, code string, purpose entity.OTPPurpose) (bool, error)
	// DeleteAll removes every code stored for email.
	DeleteAll(ctx context.Context, email string) error
}

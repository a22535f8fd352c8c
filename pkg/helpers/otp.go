package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

var otpSpace = big.NewInt(1000000)

// KeyOTP is the Redis key holding the active one-time password for an email
func KeyOTP(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

// GenOTPCode generates a 6-digit zero-padded code uniformly over 000000-999999
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("generating otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPEqual compares two codes in constant time
func OTPEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

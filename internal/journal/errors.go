package journal

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidOTP indicates an OTP that is not exactly four digits.
	ErrInvalidOTP = errors.New("otp must be exactly 4 digits")
	// ErrBlankName indicates a required name was empty.
	ErrBlankName = errors.New("name must not be blank")
)

// OTPLength is the number of digits in a PIN.
const OTPLength = 4

// ValidateOTP checks that otp, once trimmed, is exactly four ASCII digits.
func ValidateOTP(otp string) error {
	otp = strings.TrimSpace(otp)
	if len(otp) != OTPLength {
		return ErrInvalidOTP
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return ErrInvalidOTP
		}
	}
	return nil
}

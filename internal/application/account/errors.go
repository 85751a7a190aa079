package account

import "errors"

var (
	ErrInvalidPhone        = errors.New("please provide a valid 10-digit phone number")
	ErrWeakPassword        = errors.New("password must be at least 6 characters long")
	ErrInvalidOTPFormat    = errors.New("invalid otp format")
	ErrOTPNotFound         = errors.New("otp not found")
	ErrOTPExpired          = errors.New("otp expired")
	ErrOTPAttemptsExceeded = errors.New("maximum verification attempts exceeded")
	ErrOTPMismatch         = errors.New("invalid otp")
	ErrRetailerNotFound    = errors.New("retailer not found")
	ErrSendOTP             = errors.New("failed to send otp")
	ErrAccountStore        = errors.New("account store failure")
)

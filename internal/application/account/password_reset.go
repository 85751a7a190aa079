package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/account"
	"github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"go.uber.org/zap"
)

type retailerAccounts interface {
	FindRetailerByContact(ctx context.Context, contactNo string) (*party.Retailer, error)
	UpdateRetailerPassword(ctx context.Context, retailerID, newPassword string) error
}

type InitiatePasswordResetInput struct {
	Phone string
}

type InitiatePasswordResetOutput struct {
	PhoneExists bool `json:"phoneExists"`
}

type InitiatePasswordReset interface {
	Execute(ctx context.Context, in InitiatePasswordResetInput) (InitiatePasswordResetOutput, error)
}

type initiatePasswordReset struct {
	phones    *PhoneNormalizer
	retailers retailerAccounts
	store     domain.OTPStore
	logger    *zap.Logger
}

func NewInitiatePasswordReset(phones *PhoneNormalizer, retailers retailerAccounts, store domain.OTPStore, logger *zap.Logger) InitiatePasswordReset {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &initiatePasswordReset{phones: phones, retailers: retailers, store: store, logger: logger}
}

func (uc *initiatePasswordReset) Execute(ctx context.Context, in InitiatePasswordResetInput) (InitiatePasswordResetOutput, error) {
	phone, err := uc.phones.Normalize(in.Phone)
	if err != nil {
		return InitiatePasswordResetOutput{}, err
	}

	found := false
	for _, candidate := range contactCandidates(phone) {
		_, err := uc.retailers.FindRetailerByContact(ctx, candidate)
		if err == nil {
			found = true
			break
		}
		if !errors.Is(err, party.ErrPartyNotFound) {
			return InitiatePasswordResetOutput{}, fmt.Errorf("%w: %v", ErrAccountStore, err)
		}
	}
	if !found {
		uc.logger.Info("password reset for unknown phone", zap.String("phone_suffix", phoneSuffix(phone)))
		return InitiatePasswordResetOutput{}, ErrRetailerNotFound
	}

	if err := uc.store.SetResetFlag(ctx, phone, true); err != nil {
		return InitiatePasswordResetOutput{}, fmt.Errorf("%w: %v", ErrAccountStore, err)
	}

	return InitiatePasswordResetOutput{PhoneExists: true}, nil
}

type ResetPasswordInput struct {
	Phone       string
	OTP         string
	NewPassword string
}

type ResetPassword interface {
	Execute(ctx context.Context, in ResetPasswordInput) error
}

type resetPassword struct {
	phones    *PhoneNormalizer
	retailers retailerAccounts
	store     domain.OTPStore
	cfg       OTPConfig
	now       func() time.Time
}

func NewResetPassword(phones *PhoneNormalizer, retailers retailerAccounts, store domain.OTPStore, cfg OTPConfig) ResetPassword {
	return &resetPassword{phones: phones, retailers: retailers, store: store, cfg: cfg.withDefaults(), now: time.Now}
}

func (uc *resetPassword) Execute(ctx context.Context, in ResetPasswordInput) error {
	phone, err := uc.phones.Normalize(in.Phone)
	if err != nil {
		return err
	}
	if len(in.NewPassword) < domain.MinPasswordLen {
		return ErrWeakPassword
	}
	if len(in.OTP) != domain.OTPLength {
		return ErrInvalidOTPFormat
	}

	if err := checkOTP(ctx, uc.store, uc.cfg.MaxAttempts, phone, in.OTP, uc.now()); err != nil {
		return err
	}

	retailer, err := uc.retailers.FindRetailerByContact(ctx, phone)
	if err != nil {
		if errors.Is(err, party.ErrPartyNotFound) {
			return ErrRetailerNotFound
		}
		return fmt.Errorf("%w: %v", ErrAccountStore, err)
	}

	if err := uc.retailers.UpdateRetailerPassword(ctx, retailer.ID, in.NewPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountStore, err)
	}
	if err := uc.store.Delete(ctx, phone); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountStore, err)
	}
	return nil
}

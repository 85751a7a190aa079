package account

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/account"
	"go.uber.org/zap"
)

const (
	DefaultOTPTTL         = 5 * time.Minute
	DefaultOTPMaxAttempts = 5
)

type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
}

func (c OTPConfig) withDefaults() OTPConfig {
	if c.TTL <= 0 {
		c.TTL = DefaultOTPTTL
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultOTPMaxAttempts
	}
	return c
}

// GenerateOTP returns a zero-padded six digit code from a CSPRNG.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// checkOTP enforces existence, expiry, the attempt limit and the code match in
// that order. Expired and exhausted entries are removed; a mismatch counts an
// attempt.
func checkOTP(ctx context.Context, store domain.OTPStore, maxAttempts int, phone, code string, now time.Time) error {
	entry, err := store.Get(ctx, phone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccountStore, err)
	}
	if entry == nil {
		return ErrOTPNotFound
	}

	if entry.Expired(now) {
		if err := store.Delete(ctx, phone); err != nil {
			return fmt.Errorf("%w: %v", ErrAccountStore, err)
		}
		return ErrOTPExpired
	}

	if entry.Attempts >= maxAttempts {
		if err := store.Delete(ctx, phone); err != nil {
			return fmt.Errorf("%w: %v", ErrAccountStore, err)
		}
		return ErrOTPAttemptsExceeded
	}

	if entry.Code != code {
		if _, err := store.IncrementAttempts(ctx, phone); err != nil {
			return fmt.Errorf("%w: %v", ErrAccountStore, err)
		}
		return ErrOTPMismatch
	}

	return nil
}

type RequestOTPInput struct {
	Phone string
}

type RequestOTPOutput struct {
	Phone            string `json:"phone"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

type RequestOTP interface {
	Execute(ctx context.Context, in RequestOTPInput) (RequestOTPOutput, error)
}

type requestOTP struct {
	phones   *PhoneNormalizer
	store    domain.OTPStore
	sender   domain.OTPSender
	cfg      OTPConfig
	logger   *zap.Logger
	now      func() time.Time
	generate func() (string, error)
}

func NewRequestOTP(phones *PhoneNormalizer, store domain.OTPStore, sender domain.OTPSender, cfg OTPConfig, logger *zap.Logger) RequestOTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &requestOTP{
		phones:   phones,
		store:    store,
		sender:   sender,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		now:      time.Now,
		generate: GenerateOTP,
	}
}

func (uc *requestOTP) Execute(ctx context.Context, in RequestOTPInput) (RequestOTPOutput, error) {
	phone, err := uc.phones.Normalize(in.Phone)
	if err != nil {
		return RequestOTPOutput{}, err
	}

	code, err := uc.generate()
	if err != nil {
		return RequestOTPOutput{}, fmt.Errorf("%w: %v", ErrSendOTP, err)
	}

	entry := domain.OTPEntry{Code: code, ExpiresAt: uc.now().Add(uc.cfg.TTL)}
	if err := uc.store.Save(ctx, phone, entry); err != nil {
		return RequestOTPOutput{}, fmt.Errorf("%w: %v", ErrAccountStore, err)
	}

	if err := uc.sender.Send(ctx, phone, code); err != nil {
		uc.logger.Warn("send otp failed", zap.String("phone_suffix", phoneSuffix(phone)), zap.Error(err))
		if delErr := uc.store.Delete(ctx, phone); delErr != nil {
			uc.logger.Warn("discard unsent otp failed", zap.Error(delErr))
		}
		return RequestOTPOutput{}, fmt.Errorf("%w: %v", ErrSendOTP, err)
	}

	return RequestOTPOutput{Phone: phone, ExpiresInSeconds: int(uc.cfg.TTL / time.Second)}, nil
}

type VerifyOTPInput struct {
	Phone string
	OTP   string
}

type VerifyOTPOutput struct {
	Verified bool `json:"verified"`
}

type VerifyOTP interface {
	Execute(ctx context.Context, in VerifyOTPInput) (VerifyOTPOutput, error)
}

type verifyOTP struct {
	phones *PhoneNormalizer
	store  domain.OTPStore
	cfg    OTPConfig
	now    func() time.Time
}

func NewVerifyOTP(phones *PhoneNormalizer, store domain.OTPStore, cfg OTPConfig) VerifyOTP {
	return &verifyOTP{phones: phones, store: store, cfg: cfg.withDefaults(), now: time.Now}
}

// Execute consumes the code on success, which marks the phone as verified for
// registration.
func (uc *verifyOTP) Execute(ctx context.Context, in VerifyOTPInput) (VerifyOTPOutput, error) {
	phone, err := uc.phones.Normalize(in.Phone)
	if err != nil {
		return VerifyOTPOutput{}, err
	}
	if len(in.OTP) != domain.OTPLength {
		return VerifyOTPOutput{}, ErrInvalidOTPFormat
	}

	if err := checkOTP(ctx, uc.store, uc.cfg.MaxAttempts, phone, in.OTP, uc.now()); err != nil {
		return VerifyOTPOutput{}, err
	}
	if err := uc.store.Delete(ctx, phone); err != nil {
		return VerifyOTPOutput{}, fmt.Errorf("%w: %v", ErrAccountStore, err)
	}

	return VerifyOTPOutput{Verified: true}, nil
}

func phoneSuffix(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}

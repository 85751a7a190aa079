package account

import (
	"context"
	"time"
)

const (
	OTPLength      = 6
	MinPasswordLen = 6
)

type OTPEntry struct {
	Code           string
	Attempts       int
	ExpiresAt      time.Time
	ResetRequested bool
}

func (e OTPEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// OTPStore keeps one pending code per phone number. Get returns nil, nil when
// no code is pending. Save keeps a reset flag set earlier for the same phone.
type OTPStore interface {
	Save(ctx context.Context, phone string, entry OTPEntry) error
	Get(ctx context.Context, phone string) (*OTPEntry, error)
	Has(ctx context.Context, phone string) (bool, error)
	IsExpired(ctx context.Context, phone string) (bool, error)
	IncrementAttempts(ctx context.Context, phone string) (int, error)
	SetResetFlag(ctx context.Context, phone string, flag bool) error
	Delete(ctx context.Context, phone string) error
}

type OTPSender interface {
	Send(ctx context.Context, phone, code string) error
}

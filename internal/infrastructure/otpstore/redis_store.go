package otpstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/account"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "otp:"

	fieldCode      = "code"
	fieldAttempts  = "attempts"
	fieldExpiresAt = "expires_at"
	fieldReset     = "reset"

	// DefaultRetention keeps an entry readable after it expires so a late
	// attempt is answered with "expired" rather than "not found".
	DefaultRetention = 10 * time.Minute
)

// RedisStore keeps one hash per national phone number.
type RedisStore struct {
	client    redis.UniversalClient
	retention time.Duration
	now       func() time.Time
}

func NewRedisStore(client redis.UniversalClient, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisStore{client: client, retention: retention, now: time.Now}
}

func key(phone string) string {
	return keyPrefix + phone
}

// Save replaces the code and attempt counter. A reset flag set earlier survives.
func (s *RedisStore) Save(ctx context.Context, phone string, entry domain.OTPEntry) error {
	ttl := entry.ExpiresAt.Sub(s.now()) + s.retention
	if ttl <= 0 {
		ttl = s.retention
	}

	values := map[string]any{
		fieldCode:      entry.Code,
		fieldAttempts:  entry.Attempts,
		fieldExpiresAt: entry.ExpiresAt.UnixMilli(),
	}
	if entry.ResetRequested {
		values[fieldReset] = "1"
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(phone), values)
		pipe.PExpire(ctx, key(phone), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

// Get returns nil without error when no code is stored for the phone.
func (s *RedisStore) Get(ctx context.Context, phone string) (*domain.OTPEntry, error) {
	fields, err := s.client.HGetAll(ctx, key(phone)).Result()
	if err != nil {
		return nil, fmt.Errorf("get otp: %w", err)
	}
	code, ok := fields[fieldCode]
	if !ok {
		return nil, nil
	}

	attempts, _ := strconv.Atoi(fields[fieldAttempts])
	expiresAt, err := strconv.ParseInt(fields[fieldExpiresAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("get otp: bad expiry %q", fields[fieldExpiresAt])
	}

	return &domain.OTPEntry{
		Code:           code,
		Attempts:       attempts,
		ExpiresAt:      time.UnixMilli(expiresAt),
		ResetRequested: fields[fieldReset] == "1",
	}, nil
}

func (s *RedisStore) Has(ctx context.Context, phone string) (bool, error) {
	ok, err := s.client.HExists(ctx, key(phone), fieldCode).Result()
	if err != nil {
		return false, fmt.Errorf("check otp: %w", err)
	}
	return ok, nil
}

// IsExpired treats a missing entry as expired.
func (s *RedisStore) IsExpired(ctx context.Context, phone string) (bool, error) {
	entry, err := s.Get(ctx, phone)
	if err != nil {
		return false, err
	}
	return entry == nil || entry.Expired(s.now()), nil
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	n, err := s.client.HIncrBy(ctx, key(phone), fieldAttempts, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return int(n), nil
}

// SetResetFlag marks the entry without shortening the life of a pending code.
// A fresh key gets the retention TTL; an existing one only ever grows to it.
func (s *RedisStore) SetResetFlag(ctx context.Context, phone string, flag bool) error {
	value := "0"
	if flag {
		value = "1"
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(phone), fieldReset, value)
		pipe.ExpireNX(ctx, key(phone), s.retention)
		pipe.ExpireGT(ctx, key(phone), s.retention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set otp reset flag: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, key(phone)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

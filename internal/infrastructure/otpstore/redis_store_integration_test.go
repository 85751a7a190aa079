package otpstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/account"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/otpstore"
	"github.com/redis/go-redis/v9"
)

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect redis: %v", err)
	}

	const phone = "9000000099"
	store := otpstore.NewRedisStore(client, time.Minute)
	if err := store.Delete(ctx, phone); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	entry, err := store.Get(ctx, phone)
	if err != nil || entry != nil {
		t.Fatalf("expected no entry, got %+v %v", entry, err)
	}
	if expired, _ := store.IsExpired(ctx, phone); !expired {
		t.Fatal("expected missing entry to count as expired")
	}

	if err := store.SetResetFlag(ctx, phone, true); err != nil {
		t.Fatalf("set reset flag: %v", err)
	}
	if has, _ := store.Has(ctx, phone); has {
		t.Fatal("reset flag alone must not count as a pending code")
	}

	expiresAt := time.Now().Add(time.Minute).Truncate(time.Millisecond)
	if err := store.Save(ctx, phone, domain.OTPEntry{Code: "123456", ExpiresAt: expiresAt}); err != nil {
		t.Fatalf("save: %v", err)
	}
	n, err := store.IncrementAttempts(ctx, phone)
	if err != nil || n != 1 {
		t.Fatalf("expected one attempt, got %d %v", n, err)
	}

	entry, err = store.Get(ctx, phone)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Code != "123456" || entry.Attempts != 1 || !entry.ResetRequested || !entry.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if err := store.Delete(ctx, phone); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if has, _ := store.Has(ctx, phone); has {
		t.Fatal("expected entry to be gone")
	}
}

func TestRedisStoreResetFlagKeepsLongerTTL(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect redis: %v", err)
	}

	const phone = "9000000098"
	const retention = time.Minute
	store := otpstore.NewRedisStore(client, retention)
	if err := store.Delete(ctx, phone); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	defer store.Delete(ctx, phone)

	// A fresh flag still expires.
	if err := store.SetResetFlag(ctx, phone, true); err != nil {
		t.Fatalf("set reset flag: %v", err)
	}
	ttl, err := client.TTL(ctx, "otp:"+phone).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > retention {
		t.Fatalf("expected ttl within retention, got %v", ttl)
	}

	// A code living past the retention window keeps its TTL.
	expiresAt := time.Now().Add(5 * time.Minute)
	if err := store.Save(ctx, phone, domain.OTPEntry{Code: "654321", ExpiresAt: expiresAt}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SetResetFlag(ctx, phone, true); err != nil {
		t.Fatalf("set reset flag: %v", err)
	}
	ttl, err = client.TTL(ctx, "otp:"+phone).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 5*time.Minute {
		t.Fatalf("expected ttl beyond code expiry, got %v", ttl)
	}
}

package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// testClient connects to REDIS_TEST_ADDR, skipping the test when it is unset.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionStore_RejectsMalformedIDWithoutRoundTrip(t *testing.T) {
	// unreachable address: a lookup would fail with a connection error
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	store := NewSessionStore(client, time.Hour)

	for _, sid := range []string{"", "not-a-uuid", "../../etc"} {
		if _, err := store.Verify(context.Background(), sid); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("Verify(%q): expected ErrUnauthenticated, got %v", sid, err)
		}
	}
}

func TestSessionStore_UnreachableRedisIsNotUnauthenticated(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewSessionStore(client, time.Hour)

	_, err := store.Verify(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e")
	if err == nil {
		t.Fatalf("expected an error from an unreachable redis")
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("outage reported as unauthenticated: %v", err)
	}
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	if _, _, err := store.Issue(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleDoctor}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Issue: expected ErrStoreUnavailable, got %v", err)
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(testClient(t), time.Minute)

	id := domain.Identity{ID: "u1", Identifier: "drrao", Role: domain.RoleDoctor, DisplayName: "Dr. A. Rao"}
	sid, expiresAt, err := store.Issue(ctx, id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) > time.Minute {
		t.Fatalf("expiry beyond ttl: %s", expiresAt)
	}

	got, err := store.Verify(ctx, sid)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if *got != id {
		t.Fatalf("expected %+v, got %+v", id, *got)
	}

	if err := store.Revoke(ctx, sid); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := store.Verify(ctx, sid); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected revoked session to be rejected, got %v", err)
	}
}

func TestBookingCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewBookingCache(testClient(t))
	key := "test-" + time.Now().Format(time.RFC3339Nano)

	miss, err := cache.Get(ctx, key)
	if err != nil || miss != nil {
		t.Fatalf("expected clean miss, got %+v %v", miss, err)
	}

	want := &domain.Appointment{ID: "ap1", PatientName: "Asha", DoctorID: "d-rao", DoctorName: "Dr. A. Rao", Date: "2026-11-02"}
	if err := cache.Put(ctx, key, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != want.ID || got.DoctorName != want.DoctorName {
		t.Fatalf("unexpected appointment: %+v", got)
	}
}

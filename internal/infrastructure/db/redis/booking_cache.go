package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

const bookingTTL = 24 * time.Hour

// BookingCache remembers booked appointments by idempotency key.
// Key format: booking:<idempotency_key>
type BookingCache struct {
	client *redis.Client
}

func NewBookingCache(client *redis.Client) *BookingCache {
	return &BookingCache{client: client}
}

// Get returns the appointment booked under key, or nil when there is none.
func (c *BookingCache) Get(ctx context.Context, key string) (*domain.Appointment, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("booking lookup: %w", err)
	}

	var a domain.Appointment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("booking decode: %w", err)
	}
	return &a, nil
}

// Put records the appointment (expires after bookingTTL).
func (c *BookingCache) Put(ctx context.Context, key string, a *domain.Appointment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("booking encode: %w", err)
	}
	return c.client.Set(ctx, c.key(key), payload, bookingTTL).Err()
}

func (c *BookingCache) key(k string) string {
	return "booking:" + k
}

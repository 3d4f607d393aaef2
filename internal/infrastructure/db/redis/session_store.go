package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps server-side sessions keyed by an opaque id. A session
// lives for a fixed window from login and is removed on logout.
// Key format: session:<uuid>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Mode() domain.AuthMode {
	return domain.AuthModeSession
}

// Issue stores the identity snapshot under a fresh session id.
func (s *SessionStore) Issue(ctx context.Context, id domain.Identity) (string, time.Time, error) {
	payload, err := json.Marshal(id)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode session: %w", err)
	}

	sid := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)
	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return "", time.Time{}, storeError("store session", err)
	}
	return sid, expiresAt, nil
}

// Verify resolves a session id. Unknown, expired and malformed sessions all
// fail with domain.ErrUnauthenticated; Redis failures are returned as is.
func (s *SessionStore) Verify(ctx context.Context, sid string) (*domain.Identity, error) {
	if _, err := uuid.Parse(sid); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, storeError("load session", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil || !id.Role.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return &id, nil
}

// Revoke deletes the session. Unknown ids are ignored.
func (s *SessionStore) Revoke(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return storeError("delete session", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return sessionKeyPrefix + sid
}

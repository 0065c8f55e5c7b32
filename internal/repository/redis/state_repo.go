package redis

import (
	"context"
	"time"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionTTL is how long untouched session state survives. Every Save
// refreshes it, so an active session never expires mid-visit.
const SessionTTL = 30 * 24 * time.Hour

// StateRepository implements domain.StateRepository using Redis. Keys are
// "state:{session}:{key}" with a rolling TTL.
type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(client *redis.Client) *StateRepository {
	return &StateRepository{client: client, ttl: SessionTTL}
}

func stateKey(sessionID, key string) string {
	return "state:" + sessionID + ":" + key
}

// Load retrieves the value stored for a session key
func (r *StateRepository) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, stateKey(sessionID, key)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Save stores the value for a session key, overwriting any previous value
func (r *StateRepository) Save(ctx context.Context, sessionID, key string, value []byte) error {
	return r.client.Set(ctx, stateKey(sessionID, key), value, r.ttl).Err()
}

// Delete removes the value for a session key; missing keys are not an error
func (r *StateRepository) Delete(ctx context.Context, sessionID, key string) error {
	return r.client.Del(ctx, stateKey(sessionID, key)).Err()
}

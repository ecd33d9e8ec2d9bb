package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// runLock guards a periodic job against overlapping runs across workers.
// The token ties the lock to the run that acquired it so a slow run cannot
// release a lock a later run re-acquired.
type runLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

func newRunLock(client *redis.Client, key string, ttl time.Duration) *runLock {
	return &runLock{client: client, key: key, ttl: ttl}
}

// Acquire attempts to take the lock. It returns false when another run holds it.
func (l *runLock) Acquire(ctx context.Context) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Release drops the lock if this run still owns it.
func (l *runLock) Release(ctx context.Context) error {
	if l.client == nil || l.token == "" {
		return nil
	}
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// OrderLock implements ports.OrderLock using Redis SET NX. The TTL bounds
// how long a crashed fulfillment run can keep an order locked.
type OrderLock struct {
	client *goredis.Client
	prefix string
}

// NewOrderLock creates a new Redis-backed order lock.
func NewOrderLock(client *goredis.Client) *OrderLock {
	return &OrderLock{
		client: client,
		prefix: "orderlock:",
	}
}

// Acquire takes the lock for an order. Returns false when another run
// currently holds it.
func (l *OrderLock) Acquire(ctx context.Context, orderID uuid.UUID, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+orderID.String(), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis order lock acquire: %w", err)
	}
	return ok, nil
}

// Release drops the lock for an order.
func (l *OrderLock) Release(ctx context.Context, orderID uuid.UUID) error {
	if err := l.client.Del(ctx, l.prefix+orderID.String()).Err(); err != nil {
		return fmt.Errorf("redis order lock release: %w", err)
	}
	return nil
}

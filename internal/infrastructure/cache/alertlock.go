package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const alertKeyPrefix = "storage_alert:"

// StorageAlertLock lets exactly one instance send a storage alert per
// cooldown window.
type StorageAlertLock struct {
	client *redis.Client
}

func NewStorageAlertLock(client *redis.Client) *StorageAlertLock {
	return &StorageAlertLock{client: client}
}

// Format: storage_alert:{service_id}
func (l *StorageAlertLock) key(serviceID uint) string {
	return fmt.Sprintf("%s%d", alertKeyPrefix, serviceID)
}

// TryAcquire atomically claims the alert for ttl. False means another
// instance claimed it inside the window.
func (l *StorageAlertLock) TryAcquire(ctx context.Context, serviceID uint, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.key(serviceID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire alert lock: %w", err)
	}
	return acquired, nil
}

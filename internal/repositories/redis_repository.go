package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"backend/internal/models"
)

const (
	contactListKey = "contacts:all"
	contactListTTL = 5 * time.Minute
)

// RedisRepository caches the contact list.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

// GetContacts returns ok=false on a cache miss.
func (r *RedisRepository) GetContacts(ctx context.Context) ([]models.Contact, bool, error) {
	raw, err := r.rdb.Get(ctx, contactListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var contacts []models.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, false, err
	}
	return contacts, true, nil
}

func (r *RedisRepository) SetContacts(ctx context.Context, contacts []models.Contact) error {
	raw, err := json.Marshal(contacts)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, contactListKey, raw, contactListTTL).Err()
}

func (r *RedisRepository) InvalidateContacts(ctx context.Context) error {
	return r.rdb.Del(ctx, contactListKey).Err()
}

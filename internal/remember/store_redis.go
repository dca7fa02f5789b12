// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remember

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using a single Redis key without expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed slot stored under key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

/*
Get retrieves the remembered identifier.

Description: A missing key is not an error; it reports (“”, false, nil).

Returns:
  - string: Remembered identifier
  - bool: Presence flag
  - error: ErrUnavailable wrapping connectivity errors
*/
func (repository *RedisStore) Get(ctx context.Context) (string, bool, error) {

	identifier, err := repository.client.Get(ctx, repository.key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_remembered_identity_get_failed: %w: %w", ErrUnavailable, err)
	}

	return identifier, true, nil
}

/*
Set stores the identifier under the fixed key, with no TTL.

Returns:
  - error: ErrUnavailable wrapping connectivity errors
*/
func (repository *RedisStore) Set(ctx context.Context, identifier string) error {

	if err := repository.client.Set(ctx, repository.key, identifier, 0).Err(); err != nil {
		return fmt.Errorf("redis_remembered_identity_set_failed: %w: %w", ErrUnavailable, err)
	}

	return nil
}

/*
Clear deletes the fixed key.

Returns:
  - error: ErrUnavailable wrapping connectivity errors
*/
func (repository *RedisStore) Clear(ctx context.Context) error {

	if err := repository.client.Del(ctx, repository.key).Err(); err != nil {
		return fmt.Errorf("redis_remembered_identity_clear_failed: %w: %w", ErrUnavailable, err)
	}

	return nil
}

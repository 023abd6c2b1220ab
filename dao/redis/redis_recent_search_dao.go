package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"weather-dash/db"
)

const RECENT_SEARCHES_KEY_FORMAT = "recent_searches_v1:%s"

// MAX_RECENT_SEARCHES bounds the stored list.
const MAX_RECENT_SEARCHES = 5

// RedisRecentSearchDAO stores one JSON string array of recent queries per session.
type RedisRecentSearchDAO struct {
	client db.RedisClient
}

func NewRedisRecentSearchDAO(client db.RedisClient) *RedisRecentSearchDAO {
	return &RedisRecentSearchDAO{client: client}
}

// GetRecentSearches returns the session's list, most recent first. A missing key is an empty list.
func (dao *RedisRecentSearchDAO) GetRecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	key := fmt.Sprintf(RECENT_SEARCHES_KEY_FORMAT, sessionID)
	str, err := dao.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to get recent searches from redis: %w", err)
	}
	var searches []string
	if err := json.Unmarshal([]byte(str), &searches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent searches JSON: %w", err)
	}
	if searches == nil {
		searches = []string{}
	}
	return searches, nil
}

// SetRecentSearches overwrites the session's list, truncated to MAX_RECENT_SEARCHES.
func (dao *RedisRecentSearchDAO) SetRecentSearches(ctx context.Context, sessionID string, searches []string) error {
	if len(searches) > MAX_RECENT_SEARCHES {
		searches = searches[:MAX_RECENT_SEARCHES]
	}
	data, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("failed to marshal recent searches for session %s: %w", sessionID, err)
	}
	key := fmt.Sprintf(RECENT_SEARCHES_KEY_FORMAT, sessionID)
	if err := dao.client.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to set recent searches in redis: %w", err)
	}
	return nil
}

func (dao *RedisRecentSearchDAO) DeleteRecentSearches(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(RECENT_SEARCHES_KEY_FORMAT, sessionID)
	if err := dao.client.Del(ctx, key); err != nil {
		return fmt.Errorf("failed to delete recent searches key %s: %w", key, err)
	}
	return nil
}

// ListSessionIDs returns the ids of all sessions with a stored list.
func (dao *RedisRecentSearchDAO) ListSessionIDs(ctx context.Context) ([]string, error) {
	pattern := fmt.Sprintf(RECENT_SEARCHES_KEY_FORMAT, "*")
	keys, err := dao.client.Keys(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches keys: %w", err)
	}
	prefix := fmt.Sprintf(RECENT_SEARCHES_KEY_FORMAT, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

package services

import (
	"context"
	"slices"
	"sync"

	"weather-dash/dao/redis"
)

// RecentSearchService maintains the per-session list of recent queries.
type RecentSearchService struct {
	dao *redis.RedisRecentSearchDAO
	mu  sync.Mutex
}

func NewRecentSearchService(dao *redis.RedisRecentSearchDAO) *RecentSearchService {
	return &RecentSearchService{dao: dao}
}

// Add records query as the most recent search. A query already in the list is left
// where it is. Returns the resulting list.
func (rs *RecentSearchService) Add(ctx context.Context, sessionID, query string) ([]string, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	searches, err := rs.dao.GetRecentSearches(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(searches, query) {
		return searches, nil
	}

	searches = append([]string{query}, searches...)
	if len(searches) > redis.MAX_RECENT_SEARCHES {
		searches = searches[:redis.MAX_RECENT_SEARCHES]
	}
	if err := rs.dao.SetRecentSearches(ctx, sessionID, searches); err != nil {
		return nil, err
	}
	return searches, nil
}

func (rs *RecentSearchService) List(ctx context.Context, sessionID string) ([]string, error) {
	return rs.dao.GetRecentSearches(ctx, sessionID)
}

func (rs *RecentSearchService) Clear(ctx context.Context, sessionID string) error {
	return rs.dao.DeleteRecentSearches(ctx, sessionID)
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key prefixes. Every mutation invalidates the prefixes of the
// listings it can affect.
const (
	cacheTraditions = "cache:traditions"
	cachePolicies   = "cache:public_policies"
	cacheEthnic     = "cache:ethnic_groups"
	cacheCreative   = "cache:creative_activities"
	cacheDashboard  = "cache:dashboard"
)

// CacheService is a redis-backed JSON cache for listing and dashboard
// responses. All operations degrade to no-ops when redis is unavailable.
type CacheService interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefixes ...string)
}

type cacheService struct {
	rdb *redis.Client
}

func NewCacheService(rdb *redis.Client) CacheService {
	return &cacheService{rdb: rdb}
}

func (s *cacheService) Get(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}

	payload, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		log.Printf("cache unmarshal %s: %v", key, err)
		return false
	}
	return true
}

func (s *cacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.rdb == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache marshal %s: %v", key, err)
		return
	}

	if err := s.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// InvalidatePrefix deletes every key under the given prefixes. This is the
// cache-invalidation signal emitted by the CRUD flows.
func (s *cacheService) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	if s.rdb == nil {
		return
	}

	for _, prefix := range prefixes {
		iter := s.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				log.Printf("cache invalidate %s: %v", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			log.Printf("cache scan %s: %v", prefix, err)
		}
	}
}

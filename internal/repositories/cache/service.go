package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aegis/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService stores JSON-encoded values in Redis.
type CacheService struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCacheService(client redis.UniversalClient, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Fee policy caching

func (s *CacheService) GetFeePolicy(ctx context.Context) (*models.FeePolicy, bool, error) {
	var policy models.FeePolicy
	found, err := s.Get(ctx, FeePolicyKey, &policy)
	if err != nil || !found {
		return nil, false, err
	}
	return &policy, true, nil
}

func (s *CacheService) SetFeePolicy(ctx context.Context, policy *models.FeePolicy) error {
	if policy == nil {
		return errors.New("cannot cache nil fee policy")
	}
	return s.Set(ctx, FeePolicyKey, policy)
}

func (s *CacheService) InvalidateFeePolicy(ctx context.Context) error {
	return s.Delete(ctx, FeePolicyKey)
}

// Ping checks connectivity.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}

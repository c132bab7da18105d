package holdRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"preen/models"
	"preen/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const holdKeyPrefix = "hold:"

// RedisHoldStore implements HoldStore on Redis. The key TTL mirrors the
// hold's expiry, so expired holds vanish without a sweeper.
type RedisHoldStore struct {
	client *redis.Client
}

// NewRedisHoldStore constructs a hold store on the dedicated hold DB.
func NewRedisHoldStore() HoldStore {
	return &RedisHoldStore{client: utils.GetHoldCacheClient()}
}

func holdKey(professionalID, holdID string) string {
	return holdKeyPrefix + professionalID + ":" + holdID
}

func (s *RedisHoldStore) CreateHold(ctx context.Context, hold *models.Hold) error {
	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("hold %s already expired", hold.ID)
	}
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}
	if err := s.client.Set(ctx, holdKey(hold.ProfessionalID, hold.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store hold %s: %w", hold.ID, err)
	}
	return nil
}

func (s *RedisHoldStore) ListActiveHolds(ctx context.Context, professionalID string, now time.Time) ([]models.Hold, error) {
	logger := utils.GetLogger()
	var holds []models.Hold

	iter := s.client.Scan(ctx, 0, holdKeyPrefix+professionalID+":*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read hold %s: %w", iter.Val(), err)
		}
		var hold models.Hold
		if err := json.Unmarshal(data, &hold); err != nil {
			logger.Warn("skipping undecodable hold", zap.String("key", iter.Val()), zap.Error(err))
			continue
		}
		// TTL already prunes expired holds; re-check against the caller's
		// clock anyway so a lagging Redis cannot over-block.
		if hold.Expired(now) {
			continue
		}
		holds = append(holds, hold)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan holds for professional %s: %w", professionalID, err)
	}
	return holds, nil
}

func (s *RedisHoldStore) ReleaseHold(ctx context.Context, professionalID, holdID string) error {
	if err := s.client.Del(ctx, holdKey(professionalID, holdID)).Err(); err != nil {
		return fmt.Errorf("failed to release hold %s: %w", holdID, err)
	}
	return nil
}

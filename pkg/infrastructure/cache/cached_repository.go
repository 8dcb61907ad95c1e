package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

const (
	keyPrefix        = "moldplan:"
	partsKeyPrefix   = keyPrefix + "parts:"
	machinesKey      = keyPrefix + "machines"
	demandKeyPrefix  = keyPrefix + "demand:"
	monthlyKeyPrefix = keyPrefix + "monthly:"
	stockKeyPrefix   = keyPrefix + "stock:"
	shiftsKey        = keyPrefix + "shifts"
	rulesKey         = keyPrefix + "rules"

	DefaultTTL = 10 * time.Minute
)

// Source is the full set of collaborator repositories a CachedRepository fronts
type Source interface {
	repositories.PartRepository
	repositories.MachineRepository
	repositories.DemandRepository
	repositories.StockRepository
	repositories.CalendarRepository
}

// CachedRepository serves reads from redis and falls back to the source on a
// miss. Redis failures are logged and never fail the read.
type CachedRepository struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ Source = (*CachedRepository)(nil)

// NewCachedRepository wraps source with a redis read-through cache
func NewCachedRepository(source Source, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRepository{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedRepository) GetParts(ctx context.Context, machineID string) ([]*entities.Part, error) {
	return readThrough(ctx, c, partsKeyPrefix+machineID, func() ([]*entities.Part, error) {
		return c.source.GetParts(ctx, machineID)
	})
}

func (c *CachedRepository) GetActiveMachines(ctx context.Context) ([]*entities.Machine, error) {
	return readThrough(ctx, c, machinesKey, func() ([]*entities.Machine, error) {
		return c.source.GetActiveMachines(ctx)
	})
}

func (c *CachedRepository) GetDailyDemand(
	ctx context.Context,
	parts []entities.PartNumber,
	from, to time.Time,
) ([]*entities.DemandRecord, error) {
	key := demandKeyPrefix + partsDigest(parts) + ":" + entities.DateKey(from) + ":" + entities.DateKey(to)
	return readThrough(ctx, c, key, func() ([]*entities.DemandRecord, error) {
		return c.source.GetDailyDemand(ctx, parts, from, to)
	})
}

func (c *CachedRepository) GetMonthlyForecast(ctx context.Context, month string) ([]*entities.MonthlyForecast, error) {
	return readThrough(ctx, c, monthlyKeyPrefix+month, func() ([]*entities.MonthlyForecast, error) {
		return c.source.GetMonthlyForecast(ctx, month)
	})
}

func (c *CachedRepository) GetStock(ctx context.Context, parts []entities.PartNumber) ([]*entities.StockRecord, error) {
	return readThrough(ctx, c, stockKeyPrefix+partsDigest(parts), func() ([]*entities.StockRecord, error) {
		return c.source.GetStock(ctx, parts)
	})
}

func (c *CachedRepository) GetShiftRules(ctx context.Context) ([]*entities.ShiftRule, error) {
	return readThrough(ctx, c, shiftsKey, func() ([]*entities.ShiftRule, error) {
		return c.source.GetShiftRules(ctx)
	})
}

func (c *CachedRepository) GetCapacityRules(ctx context.Context) (*entities.CapacityRules, error) {
	return readThrough(ctx, c, rulesKey, func() (*entities.CapacityRules, error) {
		return c.source.GetCapacityRules(ctx)
	})
}

// Invalidate drops every cached entry so the next read hits the source
func (c *CachedRepository) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func readThrough[T any](ctx context.Context, c *CachedRepository, key string, load func() (T, error)) (T, error) {
	var cached T

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jsonErr := json.Unmarshal(data, &cached)
		if jsonErr == nil {
			return cached, nil
		}
		c.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// partsDigest keys a part list independently of its order
func partsDigest(parts []entities.PartNumber) string {
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		keys = append(keys, string(part))
	}
	sort.Strings(keys)

	sum := sha256.Sum256([]byte(strings.Join(keys, "\x00")))
	return hex.EncodeToString(sum[:8])
}

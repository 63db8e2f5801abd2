package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery-route-service/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed cache mapping addresses to coordinates.
// Entries expire after TTL so stale geocodes eventually refresh.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// Fetch cached coordinates for the given addresses with a single MGET.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (map[string]domain.Coordinates, error) {
	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, geocodeKeyPrefix+a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue // cache miss
		}
		c, err := decodeCoordinates(raw)
		if err != nil {
			// A corrupt entry is a miss, not a failure.
			continue
		}
		out[uniq[i]] = c
	}

	return out, nil
}

// Store address -> coordinate mappings with a pipelined batch of SETs.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("insert geocode cache: empty address key")
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, encodeCoordinates(c), r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}

	return nil
}

func encodeCoordinates(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func decodeCoordinates(raw string) (domain.Coordinates, error) {
	lonStr, latStr, ok := strings.Cut(raw, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed coordinate entry %q", raw)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed longitude in %q: %w", raw, err)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed latitude in %q: %w", raw, err)
	}
	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}

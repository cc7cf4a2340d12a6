package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

const DefaultCacheTTL = 10 * time.Minute

// CachedProvider serves readings from Redis and falls back to the wrapped
// provider on a miss. Any cache failure is logged and bypassed.
type CachedProvider struct {
	next   ports.WeatherProvider
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProvider(
	next ports.WeatherProvider,
	client redis.Cmdable,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "weather_cache"),
	}
}

type cachedReading struct {
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperatureC"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
}

// CacheKey buckets a location to two decimals, about a kilometre.
func CacheKey(location kernel.Location) string {
	return fmt.Sprintf("weather:%.2f:%.2f", location.Latitude(), location.Longitude())
}

func (p *CachedProvider) CurrentWeather(ctx context.Context, location kernel.Location) (delivery.Reading, error) {
	key := CacheKey(location)

	data, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedReading
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return delivery.Reading{
				Condition:    delivery.Condition(cached.Condition),
				TemperatureC: cached.TemperatureC,
				WindSpeedKmh: cached.WindSpeedKmh,
			}, nil
		}
		p.logger.WarnContext(ctx, "discarding malformed cached reading", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		p.logger.WarnContext(ctx, "weather cache read failed", "key", key, "error", err)
	}

	reading, err := p.next.CurrentWeather(ctx, location)
	if err != nil {
		return delivery.Reading{}, err
	}

	data, err = json.Marshal(cachedReading{
		Condition:    string(reading.Condition),
		TemperatureC: reading.TemperatureC,
		WindSpeedKmh: reading.WindSpeedKmh,
	})
	if err == nil {
		err = p.client.Set(ctx, key, data, p.ttl).Err()
	}
	if err != nil {
		p.logger.WarnContext(ctx, "weather cache write failed", "key", key, "error", err)
	}

	return reading, nil
}

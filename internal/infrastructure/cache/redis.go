package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/pkg/config"
	"github.com/cobraflex/printercare/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

// DashboardEventChannel is the Redis pub/sub channel carrying task, award,
// streak, session and preset change events for dashboard consumers.
const DashboardEventChannel = "dashboard:events"

const (
	healthCheckInterval = 10 * time.Second
	maxKeyLength        = 256
	scanBatchSize       = 100
)

// Config holds connection and behavior settings for the cache client.
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	UseCompression   bool
	KeyPrefix        string
}

// NewConfigFromEnv builds a cache Config from the application configuration.
func NewConfigFromEnv(cfg *config.Config) *Config {
	opTimeout := cfg.Server.Timeout
	if opTimeout == 0 {
		opTimeout = 2 * time.Second
	}
	return &Config{
		Addr:             fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: opTimeout,
		UseCompression:   false,
		KeyPrefix:        "printercare:",
	}
}

// RedisClient wraps go-redis with key prefixing, optional gzip, hit/miss
// accounting and a background health probe.
type RedisClient struct {
	client    *redis.Client
	config    *Config
	hits      atomic.Int64
	misses    atomic.Int64
	closeOnce sync.Once
	unhealthy atomic.Bool
}

// NewRedisClient connects to Redis and starts the health probe.
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r := &RedisClient{client: client, config: cfg}
	go r.probeLoop()
	return r, nil
}

func (r *RedisClient) probeLoop() {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.OperationTimeout)
		err := r.HealthCheck(ctx)
		cancel()

		r.unhealthy.Store(err != nil)
		if err != nil {
			log.Error("Redis health check failed", zap.Error(err))
		}
	}
}

// IsHealthy reports the result of the most recent health probe.
func (r *RedisClient) IsHealthy() bool {
	return !r.unhealthy.Load()
}

// HealthCheck pings the server.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close shuts down the underlying client. Safe to call more than once.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}

// GetClient exposes the raw client for components that need redis commands
// directly, such as the rate limiter.
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, r.config.OperationTimeout)
	}
	return ctx, func() {}
}

func (r *RedisClient) checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidConfig)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key exceeds %d characters", ErrInvalidConfig, maxKeyLength)
	}
	return nil
}

// Get returns the value stored under key, decompressing when configured.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if err := r.checkKey(key); err != nil {
		return "", err
	}
	if !r.IsHealthy() {
		return "", ErrCacheConnection
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.config.KeyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			r.misses.Add(1)
			return "", fmt.Errorf("%w: %s", ErrCacheNotFound, key)
		}
		return "", fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	r.hits.Add(1)
	if r.config.UseCompression {
		return gunzipString(val)
	}
	return val, nil
}

// Set stores a value under key for the given TTL.
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.checkKey(key); err != nil {
		return err
	}
	if !r.IsHealthy() {
		return ErrCacheConnection
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if r.config.UseCompression {
		compressed, err := gzipString(value)
		if err != nil {
			return fmt.Errorf("compression failed: %w", err)
		}
		value = compressed
	}

	return r.client.Set(ctx, r.config.KeyPrefix+key, value, ttl).Err()
}

// Delete removes the given keys.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if !r.IsHealthy() {
		return ErrCacheConnection
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := r.checkKey(key); err != nil {
			return err
		}
		prefixed = append(prefixed, r.config.KeyPrefix+key)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// ClearByPattern deletes every key matching the glob pattern.
func (r *RedisClient) ClearByPattern(ctx context.Context, pattern string) error {
	if !r.IsHealthy() {
		return ErrCacheConnection
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.config.KeyPrefix+pattern, scanBatchSize).Iterator()
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
	return r.client.Del(ctx, keys...).Err()
}

// InvalidateCache drops every cached entry for one entity, e.g. all task
// responses of a user after a toggle.
func (r *RedisClient) InvalidateCache(ctx context.Context, entityType string, entityID interface{}) error {
	return r.ClearByPattern(ctx, fmt.Sprintf("%s:%v*", entityType, entityID))
}

// GetMetrics returns hit/miss counters and pool statistics.
func (r *RedisClient) GetMetrics() map[string]interface{} {
	hits := r.hits.Load()
	misses := r.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	stats := r.client.PoolStats()
	return map[string]interface{}{
		"hits":     hits,
		"misses":   misses,
		"hit_rate": hitRate,
		"health":   r.IsHealthy(),
		"pool_stats": map[string]interface{}{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"stale_conns": stats.StaleConns,
		},
	}
}

// PublishDashboardEvent broadcasts a change event to dashboard subscribers.
func (r *RedisClient) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, DashboardEventChannel, data).Err()
}

// SubscribeToDashboardEvents blocks, invoking callback for every event on the
// dashboard channel until the context is canceled or the callback errors.
func (r *RedisClient) SubscribeToDashboardEvents(ctx context.Context, callback func(*events.DashboardEvent) error) error {
	pubsub := r.client.Subscribe(ctx, DashboardEventChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg := <-ch:
			var event events.DashboardEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				return err
			}
			if err := callback(&event); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func gzipString(data string) (string, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(data)); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func gunzipString(data string) (string, error) {
	gr, err := gzip.NewReader(strings.NewReader(data))
	if err != nil {
		return "", err
	}
	defer gr.Close()

	raw, err := io.ReadAll(gr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

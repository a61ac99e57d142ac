package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

const (
	cacheKeyPattern = "recipient:devices:%s"
)

var ErrCacheMiss = errors.New("cache miss")

//go:generate mockgen -package mockrepository -destination ./mock/mockcache.go . CacheProvider
type CacheProvider interface {
	Get(recipientID string) ([]DeviceToken, error)
	Set(recipientID string, devices []DeviceToken) error
	Delete(recipientID string)
}

var _ CacheProvider = (*Cache)(nil)

type Cache struct {
	engine      *ristretto.Cache[string, []DeviceToken]
	expiredTime time.Duration
}

type CacheParams struct {
	fx.In

	Config CacheConfig
}

func NewCache(lc fx.Lifecycle, params CacheParams) (*Cache, error) {
	engine, err := ristretto.NewCache(&ristretto.Config[string, []DeviceToken]{
		NumCounters: params.Config.NumCounters,
		MaxCost:     params.Config.MaxCost,
		BufferItems: params.Config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			engine.Close()
			return nil
		},
	})

	return &Cache{
		engine:      engine,
		expiredTime: params.Config.ExpiredTime,
	}, nil
}

type CacheConfig struct {
	ExpiredTime time.Duration `envconfig:"CACHE_EXPIRED_TIME" default:"10m"`
	NumCounters int64         `envconfig:"CACHE_NUM_COUNTERS" default:"10000000"`
	MaxCost     int64         `envconfig:"CACHE_MAX_COST" default:"1073741824"` // 1GB
	BufferItems int64         `envconfig:"CACHE_BUFFER_ITEMS" default:"64"`
}

func NewCacheConfig() CacheConfig {
	var cfg CacheConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (c *Cache) Get(recipientID string) ([]DeviceToken, error) {
	cacheKey := fmt.Sprintf(cacheKeyPattern, recipientID)

	value, found := c.engine.Get(cacheKey)
	if !found {
		return nil, fmt.Errorf("cache key '%s': %w", cacheKey, ErrCacheMiss)
	}
	return value, nil
}

// Set stores the devices and waits until they are visible to Get.
func (c *Cache) Set(recipientID string, devices []DeviceToken) error {
	cacheKey := fmt.Sprintf(cacheKeyPattern, recipientID)

	if !c.engine.SetWithTTL(cacheKey, devices, int64(len(devices))+1, c.expiredTime) {
		return fmt.Errorf("cache key '%s' rejected", cacheKey)
	}
	c.engine.Wait()
	return nil
}

func (c *Cache) Delete(recipientID string) {
	c.engine.Del(fmt.Sprintf(cacheKeyPattern, recipientID))
}

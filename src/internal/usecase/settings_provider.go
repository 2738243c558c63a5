package usecase

import (
	"context"
	"encoding/json"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/pkg/log"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "ADMIN:SETTINGS"

// SettingsProvider loads the admin configuration as an explicit snapshot per
// operation. The ledger core never reads settings ambiently; it receives the
// snapshot and decides from it.
type SettingsProvider struct {
	Log      log.Log
	Settings SettingsStore
	Redis    redis.UniversalClient
	TTL      time.Duration
}

func NewSettingsProvider(logger log.Log, settings SettingsStore, redisClient redis.UniversalClient) *SettingsProvider {
	return &SettingsProvider{
		Log:      logger,
		Settings: settings,
		Redis:    redisClient,
		TTL:      60 * time.Second,
	}
}

// Snapshot returns the current configuration, served from the redis cache
// when fresh. A cache miss or redis outage falls through to the database.
func (p *SettingsProvider) Snapshot(ctx context.Context) (*model.ConfigSnapshot, error) {
	if p.Redis != nil {
		cached, err := p.Redis.Get(ctx, settingsCacheKey).Result()
		if err == nil && cached != "" {
			var settings []entity.Setting
			if err := json.Unmarshal([]byte(cached), &settings); err == nil {
				return model.NewConfigSnapshot(settings), nil
			}
		}
	}

	settings, err := p.Settings.All(ctx)
	if err != nil {
		return nil, err
	}

	if p.Redis != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := p.Redis.Set(ctx, settingsCacheKey, data, p.TTL).Err(); err != nil {
				p.Log.Warn("settings-provider", "failed to cache settings", "Snapshot", err.Error())
			}
		}
	}

	return model.NewConfigSnapshot(settings), nil
}

// Invalidate drops the cached snapshot after an admin write.
func (p *SettingsProvider) Invalidate(ctx context.Context) {
	if p.Redis == nil {
		return
	}
	if err := p.Redis.Del(ctx, settingsCacheKey).Err(); err != nil {
		p.Log.Warn("settings-provider", "failed to invalidate settings cache", "Invalidate", err.Error())
	}
}

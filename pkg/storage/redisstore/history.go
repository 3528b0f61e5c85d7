package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pen/pkg/domain"
	"pen/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HistoryStore persists scan histories as one capped Redis list per device,
// newest first.
type HistoryStore struct {
	*Redis
}

// History returns the history view of r.
func (r *Redis) History() *HistoryStore {
	return &HistoryStore{Redis: r}
}

// Append pushes verdict at the head of the device list and trims the tail in
// the same MULTI, so readers never observe more than the capacity.
func (h *HistoryStore) Append(ctx context.Context, deviceID string, verdict domain.ScanVerdict) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("could not marshal verdict: %w", err)
	}

	key := h.key("history", deviceID)
	pipe := h.Client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, h.historyCapacity-1)
	if h.historyTTL > 0 {
		pipe.Expire(ctx, key, h.historyTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("could not append history: %w", err)
	}

	return nil
}

// List returns the device history, newest first. Entries that cannot be
// decoded are skipped.
func (h *HistoryStore) List(ctx context.Context, deviceID string) ([]domain.ScanVerdict, error) {
	raw, err := h.Client.LRange(ctx, h.key("history", deviceID), 0, h.historyCapacity-1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("could not read history: %w", err)
	}

	out := make([]domain.ScanVerdict, 0, len(raw))
	for _, item := range raw {
		var v domain.ScanVerdict
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			logger.Warn(ctx, "skipping undecodable history entry", zap.String("deviceId", deviceID), zap.Error(err))

			continue
		}
		out = append(out, v)
	}

	return out, nil
}

func (h *HistoryStore) Clear(ctx context.Context, deviceID string) error {
	if err := h.Client.Del(ctx, h.key("history", deviceID)).Err(); err != nil {
		return fmt.Errorf("could not clear history: %w", err)
	}

	return nil
}

// Package redis carries the optional redis-backed plan event bus.
// Plan lifecycle notifications fan out to other services through a
// pub/sub channel; when redis is not configured the bus is absent and
// callers skip publishing.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type PlanEvent struct {
	Event         string    `json:"event"`
	MemberID      string    `json:"member_id"`
	PlanID        string    `json:"plan_id"`
	TechnologyKey string    `json:"technology_key"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PlanEventBus interface {
	Publish(ctx context.Context, event PlanEvent) error
	Close() error
}

type planEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewPlanEventBus connects to redis using REDIS_ADDR. It returns an
// error when the address is unset; the caller decides whether the bus
// is optional.
func NewPlanEventBus(log *logger.Logger) (PlanEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	channel := strings.TrimSpace(os.Getenv("REDIS_PLAN_CHANNEL"))
	if channel == "" {
		channel = "plan_events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &planEventBus{
		log:     log.With("client", "PlanEventBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *planEventBus) Publish(ctx context.Context, event PlanEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal plan event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish plan event: %w", err)
	}
	return nil
}

func (b *planEventBus) Close() error {
	return b.rdb.Close()
}

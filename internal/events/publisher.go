package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Action names used in change events
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ConfigChange is the payload published on every configuration mutation.
// Downstream services (issue API, search indexer) consume these to refresh
// their cached schema.
type ConfigChange struct {
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID uuid.UUID `json:"entityId"`
}

// Publisher broadcasts configuration change events
type Publisher interface {
	Publish(ctx context.Context, entity, action string, entityID uuid.UUID)
}

type redisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a Publisher backed by a Redis pub/sub channel.
// A nil client yields a no-op publisher so local setups can run without Redis.
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) Publisher {
	return &redisPublisher{client: client, channel: channel, logger: logger}
}

// Publish sends the change event. Publishing is best effort: failures are
// logged, never surfaced to the caller, so a Redis outage cannot fail a
// configuration write that already committed.
func (p *redisPublisher) Publish(ctx context.Context, entity, action string, entityID uuid.UUID) {
	if p.client == nil {
		return
	}

	payload, err := json.Marshal(ConfigChange{
		Entity:   entity,
		Action:   action,
		EntityID: entityID,
	})
	if err != nil {
		p.logger.Error("failed to marshal config change event", zap.Error(err))
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Error("failed to publish config change event",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

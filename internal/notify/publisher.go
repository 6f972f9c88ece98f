package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

const eventQueueKey = "help_nearby_events"

// Event is a domain event emitted by the lifecycle engine after a state
// transition commits. The worker consumes it asynchronously: a failure to
// deliver never rolls back the transition that produced it.
type Event struct {
	Type        models.NotificationType `json:"type"`
	RequestID   uuid.UUID               `json:"request_id"`
	RequesterID uuid.UUID               `json:"requester_id"`
	HelperID    *uuid.UUID              `json:"helper_id,omitempty"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	OccurredAt  time.Time               `json:"occurred_at"`
}

// Publisher enqueues domain events for asynchronous consumption.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher pushes events onto a Redis list consumed by the worker.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{redisClient: client}
}

// Publish enqueues an event. LPUSH pairs with the worker's BRPOP so events
// are handled in emission order.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to Redis: %w", err)
	}
	return nil
}

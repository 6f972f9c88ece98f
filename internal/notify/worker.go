package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

// NotificationInserter persists a notification for its recipient.
type NotificationInserter interface {
	Insert(ctx context.Context, n *models.Notification) error
}

// ReputationUpdater reacts to completed and rated requests.
type ReputationUpdater interface {
	RecomputeRating(ctx context.Context, helperID uuid.UUID) error
	IncrementHelpCount(ctx context.Context, helperID uuid.UUID) error
}

// Worker consumes the domain-event queue. For each event it stores a
// notification for the recipient, applies reputation side effects, and
// optionally forwards the event to an external webhook. All of it is
// best-effort: failures are logged, never retried against the lifecycle
// transition that emitted the event.
type Worker struct {
	redisClient   *redis.Client
	notifications NotificationInserter
	reputation    ReputationUpdater
	logger        *logrus.Logger
	cfg           *config.Config
	httpClient    *http.Client
}

func NewWorker(redisClient *redis.Client, notifications NotificationInserter, reputation ReputationUpdater, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient:   redisClient,
		notifications: notifications,
		reputation:    reputation,
		logger:        logger,
		cfg:           cfg,
		httpClient: &http.Client{
			Timeout: cfg.NotifyWebhookTimeout,
		},
	}
}

// Start launches the consumer goroutine. It stops when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// BRPOP with 0 blocks until an event arrives.
				result, err := w.redisClient.BRPop(ctx, 0, eventQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop event from Redis")
					time.Sleep(w.cfg.NotifyBaseDelay)
					continue
				}

				payload := result[1]
				var event Event
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal event from Redis")
					continue
				}

				w.HandleEvent(ctx, event)
				w.deliverWebhook(ctx, payload)
			}
		}
	}()
}

// HandleEvent applies the event's side effects: reputation updates first,
// then the recipient's notification row.
func (w *Worker) HandleEvent(ctx context.Context, event Event) {
	log := w.logger.WithFields(logrus.Fields{
		"event_type": event.Type,
		"request_id": event.RequestID,
	})

	switch event.Type {
	case models.NotificationRequestCompleted:
		if event.HelperID != nil {
			if err := w.reputation.IncrementHelpCount(ctx, *event.HelperID); err != nil {
				log.WithError(err).Error("Failed to increment help count")
			}
		}
	case models.NotificationRatingReceived:
		if event.HelperID != nil {
			if err := w.reputation.RecomputeRating(ctx, *event.HelperID); err != nil {
				log.WithError(err).Error("Failed to recompute helper rating")
			}
		}
	}

	recipient, ok := Recipient(event)
	if !ok {
		log.Warn("Event has no recipient, skipping notification")
		return
	}

	requestID := event.RequestID
	notification := &models.Notification{
		UserID:         recipient,
		Title:          event.Title,
		Message:        event.Message,
		Type:           event.Type,
		RelatedRequest: &requestID,
	}
	if err := w.notifications.Insert(ctx, notification); err != nil {
		log.WithError(err).Error("Failed to store notification")
		return
	}
	log.WithField("recipient", recipient).Debug("Notification stored")
}

// Recipient resolves who a lifecycle event notifies: transitions on the
// request notify the requester, ratings and cancellations notify the
// helper.
func Recipient(event Event) (uuid.UUID, bool) {
	switch event.Type {
	case models.NotificationRequestCreated,
		models.NotificationRequestAccepted,
		models.NotificationRequestCompleted:
		return event.RequesterID, true
	case models.NotificationRatingReceived, models.NotificationSystem:
		if event.HelperID != nil {
			return *event.HelperID, true
		}
		return event.RequesterID, true
	}
	return uuid.Nil, false
}

// deliverWebhook forwards the raw event payload to the configured webhook
// with an HMAC-SHA256 signature, retrying with exponential backoff.
func (w *Worker) deliverWebhook(ctx context.Context, rawPayload string) {
	if w.cfg.NotifyWebhookURL == "" {
		return
	}
	log := w.logger.WithField("webhook_url", w.cfg.NotifyWebhookURL)

	maxRetries := w.cfg.NotifyMaxRetries
	delay := w.cfg.NotifyBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.NotifyWebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Error("Failed to create webhook request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if w.cfg.NotifyWebhookSecret != "" {
			req.Header.Set("X-Webhook-Signature", signHMACSHA256(rawPayload, w.cfg.NotifyWebhookSecret))
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Webhook delivery failed, retrying in %v", delay)
			time.Sleep(delay)
			delay *= 2
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Debug("Webhook delivered")
			return
		}
		log.Warnf("Webhook returned status %d, retrying in %v", resp.StatusCode, delay)
		time.Sleep(delay)
		delay *= 2
	}

	log.Errorf("Failed to deliver webhook after %d retries", maxRetries)
}

func signHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

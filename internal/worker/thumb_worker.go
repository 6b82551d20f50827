package worker

import (
	"MediaVault/config"
	"MediaVault/internal/mq"
	"MediaVault/internal/repo"
	"MediaVault/internal/service"
	"MediaVault/model"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

const prewarmLockTTL = 2 * time.Minute

type dlqMessage struct {
	MediaID  string    `json:"media_id"`
	Attempt  int       `json:"attempt"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// RunThumbnailWorker consumes media.uploaded events and pre-renders
// photo thumbnails so the first client read hits a warm cache.
// Rendering stays lazy and idempotent; this only fills the same
// deterministic path ahead of time.
func RunThumbnailWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueuePrewarm,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.PrewarmWorkers
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	burst := config.AppConfig.PrewarmBurst
	if burst <= 0 {
		burst = 1
	}
	var limiter *rate.Limiter
	if config.AppConfig.PrewarmRate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(config.AppConfig.PrewarmRate), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("thumbnail worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handlePrewarmMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

func handlePrewarmMessage(ctx context.Context, client *mq.Client, limiter *rate.Limiter, delivery amqp.Delivery) {
	var msg mq.MediaUploadedMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("thumbnail worker: invalid message: %v", err)
		_ = delivery.Ack(false)
		return
	}

	// Only photos get previews; video thumbnailing is unimplemented.
	if msg.Type != string(model.MediaPhoto) {
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	// A Redis lock dedupes renders when several workers see the same
	// media; losing the race just means another worker is on it.
	if repo.Redis != nil {
		lock := repo.NewRedisLock(repo.Redis, "thumb:lock:"+msg.MediaID, prewarmLockTTL)
		if err := lock.Lock(ctx); err != nil {
			if errors.Is(err, repo.ErrLockBusy) {
				_ = delivery.Ack(false)
				return
			}
			log.Printf("thumbnail worker: lock %s: %v", msg.MediaID, err)
		} else {
			defer func() {
				if err := lock.Unlock(context.Background()); err != nil {
					log.Printf("thumbnail worker: unlock %s: %v", msg.MediaID, err)
				}
			}()
		}
	}

	if _, err := service.GenerateThumbnail(ctx, msg.MediaID); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if !shouldRetry(err) {
			// Permanent outcome; the lazy read path reports it to
			// clients directly.
			_ = delivery.Ack(false)
			return
		}
		log.Printf("thumbnail worker: render %s failed: %v", msg.MediaID, err)
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			log.Printf("thumbnail worker: retry schedule failed: %v", err)
			_ = delivery.Nack(false, true)
			return
		}
		_ = delivery.Ack(false)
		return
	}
	_ = delivery.Ack(false)
}

// shouldRetry separates transient failures (storage or DB hiccups) from
// deterministic ones a redelivery can never fix.
func shouldRetry(err error) bool {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrNotImplemented),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrCorruptImage),
		errors.Is(err, service.ErrSourceMissing),
		errors.Is(err, service.ErrEmptySource):
		return false
	}
	return true
}

// scheduleRetry re-publishes with a bounded attempt count and a growing
// delay; exhausted messages go to the dead-letter queue instead.
func scheduleRetry(ctx context.Context, client *mq.Client, msg mq.MediaUploadedMessage, procErr error) error {
	maxRetry := config.AppConfig.PrewarmRetryMax
	if maxRetry < 0 {
		maxRetry = 0
	}
	nextAttempt := msg.Attempt + 1
	if maxRetry == 0 || nextAttempt > maxRetry {
		return publishDeadLetter(ctx, client, msg, procErr)
	}

	msg.Attempt = nextAttempt
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	delay := pickRetryDelay(nextAttempt, config.AppConfig.PrewarmRetryDelays)
	return client.PublishRetry(ctx, body, delay)
}

func publishDeadLetter(ctx context.Context, client *mq.Client, msg mq.MediaUploadedMessage, procErr error) error {
	body, err := json.Marshal(dlqMessage{
		MediaID:  msg.MediaID,
		Attempt:  msg.Attempt,
		Error:    procErr.Error(),
		FailedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	return client.PublishDLQ(ctx, body)
}

func pickRetryDelay(attempt int, delays []time.Duration) time.Duration {
	if len(delays) == 0 {
		return 0
	}
	index := attempt - 1
	if index < 0 {
		index = 0
	}
	if index >= len(delays) {
		index = len(delays) - 1
	}
	return delays[index]
}

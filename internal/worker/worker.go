package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aescanero/dago-spec/internal/config"
	"github.com/aescanero/dago-spec/internal/filter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamClient is the subset of the Redis client used by the worker
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Worker represents the spec worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   StreamClient
	filter        *filter.Filter
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(cfg *config.Config, redisClient StreamClient, f *filter.Filter, logger *zap.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		filter:        f,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting spec worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
		zap.Strings("specs", w.filter.SpecNames()),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	go w.processWork()

	w.logger.Info("spec worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight message to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping spec worker", zap.String("worker_id", w.id))

	w.cancel()

	select {
	case <-w.done:
	case <-time.After(w.config.BlockTime + 2*time.Second):
		return fmt.Errorf("worker %s did not stop in time", w.id)
	}

	w.logger.Info("spec worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP means the group already exists
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream", zap.Error(err))
				select {
				case <-w.ctx.Done():
				case <-time.After(time.Second):
				}
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single filter request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing filter request", zap.String("message_id", messageID))

	request, err := parseRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse filter request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	if err := w.processRequest(request); err != nil {
		w.logger.Error("failed to process filter request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		w.publishError(request, err)
	}

	w.acknowledgeMessage(messageID)
}

// parseRequest parses a filter request from a Redis message
func parseRequest(values map[string]interface{}) (*filter.Request, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request filter.Request
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filter request: %w", err)
	}

	return &request, nil
}

// processRequest applies the filter and publishes the result
func (w *Worker) processRequest(request *filter.Request) error {
	result, err := w.filter.Apply(w.ctx, request)
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	if err := w.publishResult(result); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	return nil
}

// publishResult publishes the filter result, retrying up to MaxRetries times
func (w *Worker) publishResult(result *filter.Result) error {
	data, err := json.Marshal(struct {
		*filter.Result
		WorkerID  string    `json:"worker_id"`
		Timestamp time.Time `json:"timestamp"`
	}{result, w.id, time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	var publishErr error
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		_, publishErr = w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
			Stream: w.resultStream,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Result()
		if publishErr == nil {
			break
		}
		w.logger.Warn("publish attempt failed",
			zap.String("request_id", result.RequestID),
			zap.Int("attempt", attempt+1),
			zap.Error(publishErr),
		)
	}
	if publishErr != nil {
		return fmt.Errorf("failed to publish to stream: %w", publishErr)
	}

	w.logger.Info("published filter result",
		zap.String("request_id", result.RequestID),
		zap.Int("matched", len(result.Matched)),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(request *filter.Request, err error) {
	errorEvent := map[string]interface{}{
		"request_id": request.RequestID,
		"spec":       request.Spec,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}

	data, marshalErr := json.Marshal(errorEvent)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	_, publishErr := w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream + ".errors",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

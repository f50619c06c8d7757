package route

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/metrics"
	"github.com/route-engine/internal/worker"
)

const (
	workerName      = "route-generation"
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second
)

// RouteGenerator - построение маршрута по готовым настройкам
type RouteGenerator interface {
	Generate(ctx context.Context, origin, destination domain.Coordinate, settings domain.RouteSettings) (*domain.GeneratedRoute, error)
}

// GenerationWorker читает запросы из stream:route:generate и публикует результаты в stream:route:done
type GenerationWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	generator  RouteGenerator
}

func NewGenerationWorker(
	streamRepo repository.StreamRepository,
	generator RouteGenerator,
	consumerGroup string,
	logger *zap.Logger,
) *GenerationWorker {
	return &GenerationWorker{
		BaseWorker: worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo: streamRepo,
		generator:  generator,
	}
}

// Start блокирует до Stop или отмены ctx
func (w *GenerationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting route generation worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteGenerate, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		pause := time.Duration(0)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			pause = errorSleep
		case processed == 0:
			pause = emptyQueueSleep
		}

		if pause > 0 {
			// прерывание паузы обработает select в начале цикла
			w.Pause(ctx, pause)
		}
	}
}

// ProcessBatch обрабатывает одну пачку сообщений и возвращает их количество.
// Битые сообщения подтверждаются сразу; ошибка генерации уходит в RouteDoneEvent.Error.
func (w *GenerationWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamRouteGenerate, w.ConsumerGroup(), w.ConsumerName(), maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	processedIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseEvent(msg)
		if err != nil {
			logger.Warn("Malformed route event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.StreamEvents.WithLabelValues(workerName, "malformed").Inc()
			if ackErr := w.streamRepo.AckMessage(ctx, domain.StreamRouteGenerate, w.ConsumerGroup(), msg.ID); ackErr != nil {
				logger.Error("Failed to ack malformed message", zap.String("message_id", msg.ID), zap.Error(ackErr))
			}
			continue
		}

		done := w.handle(ctx, event)
		if err := w.streamRepo.PublishToStream(ctx, domain.StreamRouteDone, done); err != nil {
			// без ack сообщение будет перечитано
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
			continue
		}
		processedIDs = append(processedIDs, msg.ID)
	}

	if len(processedIDs) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamRouteGenerate, w.ConsumerGroup(), processedIDs); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("acked", len(processedIDs)))

	return len(messages), nil
}

func (w *GenerationWorker) handle(ctx context.Context, event *domain.RouteGenerateEvent) *domain.RouteDoneEvent {
	done := &domain.RouteDoneEvent{RequestID: event.RequestID}

	if !event.Validate() {
		done.Error = errors.ErrInvalidCoordinates.Message
		metrics.StreamEvents.WithLabelValues(workerName, "error").Inc()
		return done
	}

	settings := domain.DefaultRouteSettings()
	if event.Settings != nil {
		settings = *event.Settings
	}

	generated, err := w.generator.Generate(ctx, event.Origin, event.Destination, settings)
	if err != nil {
		w.Logger().Warn("Route generation failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		done.Error = err.Error()
		metrics.StreamEvents.WithLabelValues(workerName, "error").Inc()
		return done
	}

	done.RouteID = generated.Route.ID
	done.Distance = generated.Route.Distance
	done.Duration = generated.Route.Duration
	done.POICount = len(generated.POIsOnRoute)
	metrics.StreamEvents.WithLabelValues(workerName, "ok").Inc()
	return done
}

func parseEvent(msg domain.StreamMessage) (*domain.RouteGenerateEvent, error) {
	var event domain.RouteGenerateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

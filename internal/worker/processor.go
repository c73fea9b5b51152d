package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	CriticalQueue = "critical"
	DefaultQueue  = "default"
)

// RedisTaskProcessor consumes background tasks from redis.
type RedisTaskProcessor struct {
	server          *asynq.Server
	recommendations service.RecommendationService
	logger          *zap.Logger
}

func NewRedisTaskProcessor(
	opt asynq.RedisClientOpt,
	recommendations service.RecommendationService,
	logger *zap.Logger,
) *RedisTaskProcessor {
	server := asynq.NewServer(opt, asynq.Config{
		Queues: map[string]int{
			CriticalQueue: 10,
			DefaultQueue:  5,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("task processing failed",
				zap.String("type", task.Type()),
				zap.ByteString("payload", task.Payload()),
				zap.Error(err),
			)
		}),
	})

	return &RedisTaskProcessor{
		server:          server,
		recommendations: recommendations,
		logger:          logger,
	}
}

// ProcessRecommendationCleanup re-validates the user's recommendation
// list and drops stale entries. Safe to run any number of times.
func (p *RedisTaskProcessor) ProcessRecommendationCleanup(ctx context.Context, task *asynq.Task) error {
	var payload RecommendationCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal cleanup payload: %w", asynq.SkipRetry)
	}

	removed, err := p.recommendations.Cleanup(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Nothing left to clean for a deleted user.
			return nil
		}
		return fmt.Errorf("cleanup recommendations: %w", err)
	}

	p.logger.Info("recommendation cleanup completed",
		zap.String("user_id", payload.UserID.Hex()),
		zap.Int("removed", removed),
	)
	return nil
}

func (p *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRecommendationCleanup, p.ProcessRecommendationCleanup)
	return p.server.Start(mux)
}

func (p *RedisTaskProcessor) Shutdown() {
	p.server.Shutdown()
}

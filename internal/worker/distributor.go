package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const TaskRecommendationCleanup = "reco:cleanup"

// RecommendationCleanupPayload identifies the user whose
// recommendation list should be re-validated.
type RecommendationCleanupPayload struct {
	UserID primitive.ObjectID `json:"user_id"`
}

// RedisTaskDistributor enqueues background tasks. Implements
// service.MaintenanceScheduler.
type RedisTaskDistributor struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewRedisTaskDistributor(opt asynq.RedisClientOpt, logger *zap.Logger) *RedisTaskDistributor {
	return &RedisTaskDistributor{
		client: asynq.NewClient(opt),
		logger: logger,
	}
}

// ScheduleRecommendationCleanup enqueues a cleanup pass for the user.
// Duplicate enqueues are harmless since the task is idempotent.
func (d *RedisTaskDistributor) ScheduleRecommendationCleanup(ctx context.Context, userID primitive.ObjectID) error {
	payload, err := json.Marshal(RecommendationCleanupPayload{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal cleanup payload: %w", err)
	}

	task := asynq.NewTask(TaskRecommendationCleanup, payload, asynq.MaxRetry(3), asynq.Queue(DefaultQueue))
	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue cleanup task: %w", err)
	}

	d.logger.Debug("scheduled recommendation cleanup",
		zap.String("user_id", userID.Hex()),
		zap.String("task_id", info.ID),
	)
	return nil
}

func (d *RedisTaskDistributor) Close() error {
	return d.client.Close()
}

package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/devimrittika/Green-Planet/internal/db"
	"github.com/devimrittika/Green-Planet/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SwapRepository interface {
	Insert(ctx context.Context, swap model.Swap) (*model.Swap, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Swap, error)
	// GetOpenForUser returns the swap only when it belongs to the
	// user and is still open; mongo.ErrNoDocuments otherwise. Backs
	// the recommendation validity predicate.
	GetOpenForUser(ctx context.Context, id, userID primitive.ObjectID) (*model.Swap, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Swap, error)
	ListOpen(ctx context.Context) ([]model.Swap, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type swapRepository struct {
	mongoRepo *db.Repository[model.Swap]
	logger    *zap.Logger
}

func NewSwapRepository(repo *db.Repository[model.Swap], logger *zap.Logger) SwapRepository {
	return &swapRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *swapRepository) Insert(ctx context.Context, swap model.Swap) (*model.Swap, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	swap.CreatedAt = now
	swap.UpdatedAt = now

	id, err := r.mongoRepo.Create(ctx, swap)
	if err != nil {
		r.logger.Error("failed to insert swap", zap.Error(err))
		return nil, fmt.Errorf("insert swap: %w", err)
	}
	swap.ID = id
	return &swap, nil
}

func (r *swapRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Swap, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindByID(ctx, id)
}

func (r *swapRepository) GetOpenForUser(ctx context.Context, id, userID primitive.ObjectID) (*model.Swap, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("_id", id).
		Eq("user", userID).
		Eq("status", model.SwapOpen).
		Build()
	return r.mongoRepo.FindOne(ctx, filter)
}

func (r *swapRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Swap, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().Eq("user", userID).Build(), db.NewestFirst(0))
}

func (r *swapRepository) ListOpen(ctx context.Context) ([]model.Swap, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("status", model.SwapOpen).Build()
	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(0))
}

func (r *swapRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update["updated_at"] = time.Now()
	_, err := r.mongoRepo.UpdateByID(ctx, id, update)
	return err
}

func (r *swapRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.DeleteByID(ctx, id)
	return err
}

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

// searchResultCap bounds marketplace search results.
const searchResultCap = 50

type SellPlantRepository interface {
	Insert(ctx context.Context, plant model.SellPlant) (*model.SellPlant, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.SellPlant, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.SellPlant, error)
	ListAvailable(ctx context.Context) ([]model.SellPlant, error)
	Search(ctx context.Context, query string) ([]model.SellPlant, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type sellPlantRepository struct {
	mongoRepo *db.Repository[model.SellPlant]
	logger    *zap.Logger
}

func NewSellPlantRepository(repo *db.Repository[model.SellPlant], logger *zap.Logger) SellPlantRepository {
	return &sellPlantRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *sellPlantRepository) Insert(ctx context.Context, plant model.SellPlant) (*model.SellPlant, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	plant.CreatedAt = now
	plant.UpdatedAt = now

	id, err := r.mongoRepo.Create(ctx, plant)
	if err != nil {
		r.logger.Error("failed to insert plant listing", zap.Error(err))
		return nil, fmt.Errorf("insert plant listing: %w", err)
	}
	plant.ID = id
	return &plant, nil
}

func (r *sellPlantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.SellPlant, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindByID(ctx, id)
}

func (r *sellPlantRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.SellPlant, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().Eq("user", userID).Build(), db.NewestFirst(0))
}

func (r *sellPlantRepository) ListAvailable(ctx context.Context) ([]model.SellPlant, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("status", model.SellPlantAvailable).Build()
	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(0))
}

// Search matches the query case-insensitively against plant name and
// plant type of available listings, newest first, capped.
func (r *sellPlantRepository) Search(ctx context.Context, query string) ([]model.SellPlant, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("status", model.SellPlantAvailable).
		Or(
			db.NewFilter().Contains("plant_name", query).Build(),
			db.NewFilter().Contains("plant_type", query).Build(),
		).
		Build()

	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(searchResultCap))
}

func (r *sellPlantRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update["updated_at"] = time.Now()
	_, err := r.mongoRepo.UpdateByID(ctx, id, update)
	return err
}

func (r *sellPlantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.DeleteByID(ctx, id)
	return err
}

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

// highlightCount is how many recent public blogs the community
// dashboard shows.
const highlightCount = 5

type BlogRepository interface {
	Insert(ctx context.Context, blog model.Blog) (*model.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Blog, error)
	ListPublic(ctx context.Context) ([]model.Blog, error)
	Highlights(ctx context.Context) ([]model.Blog, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type blogRepository struct {
	mongoRepo *db.Repository[model.Blog]
	logger    *zap.Logger
}

func NewBlogRepository(repo *db.Repository[model.Blog], logger *zap.Logger) BlogRepository {
	return &blogRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *blogRepository) Insert(ctx context.Context, blog model.Blog) (*model.Blog, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	id, err := r.mongoRepo.Create(ctx, blog)
	if err != nil {
		r.logger.Error("failed to insert blog", zap.Error(err))
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	blog.ID = id
	return &blog, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindByID(ctx, id)
}

func (r *blogRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Blog, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().Eq("user", userID).Build(), db.NewestFirst(0))
}

func (r *blogRepository) ListPublic(ctx context.Context) ([]model.Blog, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("visibility", model.VisibilityPublic).Build()
	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(0))
}

func (r *blogRepository) Highlights(ctx context.Context) ([]model.Blog, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("visibility", model.VisibilityPublic).Build()
	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(highlightCount))
}

func (r *blogRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Apply(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *blogRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update["updated_at"] = time.Now()
	_, err := r.mongoRepo.UpdateByID(ctx, id, update)
	return err
}

func (r *blogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.DeleteByID(ctx, id)
	return err
}

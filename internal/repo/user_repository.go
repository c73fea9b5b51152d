package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/devimrittika/Green-Planet/internal/db"
	"github.com/devimrittika/Green-Planet/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserRepository persists user documents and owns all mutations of
// the embedded activities and recommended_plants sequences.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UsernameTaken(ctx context.Context, username string, excluding primitive.ObjectID) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	PushActivity(ctx context.Context, userID primitive.ObjectID, entry model.ActivityEntry) error
	PullActivitiesBySource(ctx context.Context, userID primitive.ObjectID, entryType string, sourceID primitive.ObjectID) error
	PushRecommendation(ctx context.Context, userID primitive.ObjectID, entry model.RecommendationEntry) error
	PullRecommendationsByID(ctx context.Context, userID primitive.ObjectID, entryIDs []primitive.ObjectID) error
	PullRecommendationsBySwap(ctx context.Context, userID primitive.ObjectID, swapID primitive.ObjectID) error
}

type userRepository struct {
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(repo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Activities == nil {
		user.Activities = []model.ActivityEntry{}
	}
	if user.RecommendedPlants == nil {
		user.RecommendedPlants = []model.RecommendationEntry{}
	}

	id, err := r.mongoRepo.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		r.logger.Error("failed to insert user", zap.Error(err))
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id

	r.logger.Info("user created", zap.String("user_id", id.Hex()))
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindByID(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("email", email).Build())
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string, excluding primitive.ObjectID) (bool, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	other, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("username", username).Build())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return other.ID != excluding, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update["updated_at"] = time.Now()
	_, err := r.mongoRepo.UpdateByID(ctx, id, update)
	return err
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.Empty(), db.NewestFirst(0))
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushActivity inserts the entry at the head of the user's ledger.
// The write is retried on transient failures; the ledger is advisory
// so a final failure is surfaced but never blocks the caller's
// primary write.
func (r *userRepository) PushActivity(ctx context.Context, userID primitive.ObjectID, entry model.ActivityEntry) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	err := withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := r.mongoRepo.Apply(ctx, userID, bson.M{
			"$push": bson.M{
				"activities": bson.M{
					"$each":     []model.ActivityEntry{entry},
					"$position": 0,
				},
			},
		})
		return err
	})
	if err != nil {
		r.logger.Error("failed to push activity",
			zap.String("user_id", userID.Hex()),
			zap.String("type", entry.Type),
			zap.Error(err),
		)
		return fmt.Errorf("push activity: %w", err)
	}
	return nil
}

// PullActivitiesBySource removes every ledger entry produced by the
// given source entity. Matching is by (type, source_id) so entries
// from same-named entities are never touched.
func (r *userRepository) PullActivitiesBySource(ctx context.Context, userID primitive.ObjectID, entryType string, sourceID primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Apply(ctx, userID, bson.M{
		"$pull": bson.M{
			"activities": bson.M{
				"type":      entryType,
				"source_id": sourceID,
			},
		},
	})
	if err != nil {
		r.logger.Error("failed to pull activities",
			zap.String("user_id", userID.Hex()),
			zap.String("source_id", sourceID.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("pull activities: %w", err)
	}
	return nil
}

// PushRecommendation inserts the entry at the head of the user's
// recommendation list.
func (r *userRepository) PushRecommendation(ctx context.Context, userID primitive.ObjectID, entry model.RecommendationEntry) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Apply(ctx, userID, bson.M{
		"$push": bson.M{
			"recommended_plants": bson.M{
				"$each":     []model.RecommendationEntry{entry},
				"$position": 0,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("push recommendation: %w", err)
	}
	return nil
}

// PullRecommendationsByID removes the entries with the given ids.
// Removing an id that is already gone is a no-op, which keeps the
// cleanup task idempotent.
func (r *userRepository) PullRecommendationsByID(ctx context.Context, userID primitive.ObjectID, entryIDs []primitive.ObjectID) error {
	if len(entryIDs) == 0 {
		return nil
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Apply(ctx, userID, bson.M{
		"$pull": bson.M{
			"recommended_plants": bson.M{
				"_id": bson.M{"$in": entryIDs},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pull recommendations: %w", err)
	}
	return nil
}

// PullRecommendationsBySwap removes entries that reference the given
// swap. Keyed on swap identity, not plant-name text.
func (r *userRepository) PullRecommendationsBySwap(ctx context.Context, userID primitive.ObjectID, swapID primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Apply(ctx, userID, bson.M{
		"$pull": bson.M{
			"recommended_plants": bson.M{"from_swap": swapID},
		},
	})
	if err != nil {
		return fmt.Errorf("pull recommendations by swap: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RecommendationService maintains the per-user recommendation list
// embedded in the user document. Reads never write: invalid entries
// found during ListValid are reported to the caller, and removal
// happens in Cleanup, which is idempotent and safe to run from a
// background task.
type RecommendationService interface {
	// AddIfAbsent inserts a recommendation for plantName sourced
	// from the given swap unless an entry with the same name
	// (case-insensitive) already exists. Returns the new entry, or
	// nil when the name was already present.
	AddIfAbsent(ctx context.Context, userID primitive.ObjectID, plantName string, swapID primitive.ObjectID) (*model.RecommendationEntry, error)

	// ListValid returns the user's valid recommendations, newest
	// first, along with the ids of entries that failed validation.
	ListValid(ctx context.Context, userID primitive.ObjectID) (valid []model.RecommendationEntry, invalidIDs []primitive.ObjectID, err error)

	// Cleanup re-evaluates the user's list and removes invalid
	// entries. Returns how many were removed.
	Cleanup(ctx context.Context, userID primitive.ObjectID) (int, error)

	// RemoveBySwap removes entries referencing the given swap.
	RemoveBySwap(ctx context.Context, userID primitive.ObjectID, swapID primitive.ObjectID) error
}

type recommendationService struct {
	users  repo.UserRepository
	swaps  repo.SwapRepository
	logger *zap.Logger
}

func NewRecommendationService(users repo.UserRepository, swaps repo.SwapRepository, logger *zap.Logger) RecommendationService {
	return &recommendationService{
		users:  users,
		swaps:  swaps,
		logger: logger,
	}
}

func (s *recommendationService) AddIfAbsent(ctx context.Context, userID primitive.ObjectID, plantName string, swapID primitive.ObjectID) (*model.RecommendationEntry, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	for _, existing := range user.RecommendedPlants {
		if strings.EqualFold(existing.PlantName, plantName) {
			// First-seen entry is retained, not refreshed.
			return nil, nil
		}
	}

	entry := model.RecommendationEntry{
		ID:        primitive.NewObjectID(),
		PlantName: plantName,
		FromSwap:  &swapID,
		CreatedAt: time.Now(),
	}

	if err := s.users.PushRecommendation(ctx, userID, entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *recommendationService) ListValid(ctx context.Context, userID primitive.ObjectID) ([]model.RecommendationEntry, []primitive.ObjectID, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	valid := make([]model.RecommendationEntry, 0, len(user.RecommendedPlants))
	var invalidIDs []primitive.ObjectID

	for _, entry := range user.RecommendedPlants {
		ok, err := s.entryValid(ctx, userID, entry)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			valid = append(valid, entry)
		} else {
			invalidIDs = append(invalidIDs, entry.ID)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].CreatedAt.After(valid[j].CreatedAt)
	})

	return valid, invalidIDs, nil
}

func (s *recommendationService) Cleanup(ctx context.Context, userID primitive.ObjectID) (int, error) {
	_, invalidIDs, err := s.ListValid(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(invalidIDs) == 0 {
		return 0, nil
	}

	if err := s.users.PullRecommendationsByID(ctx, userID, invalidIDs); err != nil {
		return 0, err
	}

	s.logger.Info("removed stale recommendations",
		zap.String("user_id", userID.Hex()),
		zap.Int("count", len(invalidIDs)),
	)
	return len(invalidIDs), nil
}

func (s *recommendationService) RemoveBySwap(ctx context.Context, userID primitive.ObjectID, swapID primitive.ObjectID) error {
	return s.users.PullRecommendationsBySwap(ctx, userID, swapID)
}

// entryValid is the validity predicate: the entry must reference a
// swap, and that swap must still exist, belong to the user and be
// open. It performs no writes.
func (s *recommendationService) entryValid(ctx context.Context, userID primitive.ObjectID, entry model.RecommendationEntry) (bool, error) {
	if entry.FromSwap == nil {
		return false, nil
	}

	_, err := s.swaps.GetOpenForUser(ctx, *entry.FromSwap, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

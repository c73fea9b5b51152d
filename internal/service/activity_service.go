package service

import (
	"context"
	"sort"
	"time"

	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FeedPublisher pushes new ledger entries to connected feed clients.
// Implemented by the websocket hub; a no-op implementation is fine.
type FeedPublisher interface {
	PublishActivity(userName string, entry model.ActivityEntry)
}

// ActivityService maintains the per-user activity ledger embedded in
// the user document.
type ActivityService interface {
	// Append inserts a new entry at the head of the user's ledger
	// and returns it. No deduplication is performed.
	Append(ctx context.Context, userID primitive.ObjectID, userName, entryType string, sourceID primitive.ObjectID, message string) (model.ActivityEntry, error)

	// List returns the user's full ledger, newest first. Ties on
	// created_at keep their insertion order.
	List(ctx context.Context, userID primitive.ObjectID) ([]model.ActivityEntry, error)

	// RemoveBySource removes every entry the given entity produced.
	RemoveBySource(ctx context.Context, userID primitive.ObjectID, entryType string, sourceID primitive.ObjectID) error
}

type activityService struct {
	users  repo.UserRepository
	feed   FeedPublisher
	logger *zap.Logger
}

func NewActivityService(users repo.UserRepository, feed FeedPublisher, logger *zap.Logger) ActivityService {
	return &activityService{
		users:  users,
		feed:   feed,
		logger: logger,
	}
}

func (s *activityService) Append(ctx context.Context, userID primitive.ObjectID, userName, entryType string, sourceID primitive.ObjectID, message string) (model.ActivityEntry, error) {
	entry := model.ActivityEntry{
		ID:        primitive.NewObjectID(),
		Type:      entryType,
		SourceID:  sourceID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.users.PushActivity(ctx, userID, entry); err != nil {
		return model.ActivityEntry{}, err
	}

	if s.feed != nil {
		s.feed.PublishActivity(userName, entry)
	}

	return entry, nil
}

func (s *activityService) List(ctx context.Context, userID primitive.ObjectID) ([]model.ActivityEntry, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entries := make([]model.ActivityEntry, len(user.Activities))
	copy(entries, user.Activities)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

func (s *activityService) RemoveBySource(ctx context.Context, userID primitive.ObjectID, entryType string, sourceID primitive.ObjectID) error {
	return s.users.PullActivitiesBySource(ctx, userID, entryType, sourceID)
}

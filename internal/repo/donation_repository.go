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

type DonationRepository interface {
	Insert(ctx context.Context, donation model.Donation) (*model.Donation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Donation, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Donation, error)
	ListPending(ctx context.Context) ([]model.Donation, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type donationRepository struct {
	mongoRepo *db.Repository[model.Donation]
	logger    *zap.Logger
}

func NewDonationRepository(repo *db.Repository[model.Donation], logger *zap.Logger) DonationRepository {
	return &donationRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *donationRepository) Insert(ctx context.Context, donation model.Donation) (*model.Donation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	donation.CreatedAt = now
	donation.UpdatedAt = now

	id, err := r.mongoRepo.Create(ctx, donation)
	if err != nil {
		r.logger.Error("failed to insert donation", zap.Error(err))
		return nil, fmt.Errorf("insert donation: %w", err)
	}
	donation.ID = id
	return &donation, nil
}

func (r *donationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Donation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindByID(ctx, id)
}

func (r *donationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Donation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().Eq("user", userID).Build(), db.NewestFirst(0))
}

// ListPending returns the community view: offers still waiting for a
// taker.
func (r *donationRepository) ListPending(ctx context.Context) ([]model.Donation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("status", model.DonationPending).Build()
	return r.mongoRepo.FindAll(ctx, filter, db.NewestFirst(0))
}

func (r *donationRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update["updated_at"] = time.Now()
	_, err := r.mongoRepo.UpdateByID(ctx, id, update)
	return err
}

func (r *donationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.DeleteByID(ctx, id)
	return err
}

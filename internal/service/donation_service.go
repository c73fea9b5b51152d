package service

import (
	"context"

	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CreateDonationInput struct {
	PlantName string
	Quantity  int64
	Image     string
}

type CreatedDonation struct {
	Donation *model.Donation     `json:"donation"`
	Activity model.ActivityEntry `json:"activity"`
}

type DonationService interface {
	Create(ctx context.Context, callerID primitive.ObjectID, in CreateDonationInput) (*CreatedDonation, error)
	MyDonations(ctx context.Context, callerID primitive.ObjectID) ([]model.Donation, error)
	AllPending(ctx context.Context) ([]model.Donation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Donation, error)
	UpdateStatus(ctx context.Context, callerID, id primitive.ObjectID, status string) (*model.Donation, error)
	Delete(ctx context.Context, callerID, id primitive.ObjectID) error
}

type donationService struct {
	donations  repo.DonationRepository
	users      repo.UserRepository
	activities ActivityService
	logger     *zap.Logger
}

func NewDonationService(
	donations repo.DonationRepository,
	users repo.UserRepository,
	activities ActivityService,
	logger *zap.Logger,
) DonationService {
	return &donationService{
		donations:  donations,
		users:      users,
		activities: activities,
		logger:     logger,
	}
}

func (s *donationService) Create(ctx context.Context, callerID primitive.ObjectID, in CreateDonationInput) (*CreatedDonation, error) {
	if err := requireFields(
		"plantName", in.PlantName,
		"image", in.Image,
	); err != nil {
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, &ValidationError{Fields: []string{"quantity"}}
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	donation, err := s.donations.Insert(ctx, model.Donation{
		UserID:    callerID,
		PlantName: in.PlantName,
		Quantity:  in.Quantity,
		Image:     in.Image,
		Status:    model.DonationPending,
		OwnerName: user.Name,
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedDonation{Donation: donation}

	message := donationMessage(user.Name, in.Quantity, in.PlantName)
	entry, err := s.activities.Append(ctx, callerID, user.Name, model.ActivityDonation, donation.ID, message)
	if err != nil {
		s.logger.Warn("donation created but activity append failed",
			zap.String("donation_id", donation.ID.Hex()), zap.Error(err))
	} else {
		created.Activity = entry
	}

	return created, nil
}

func (s *donationService) MyDonations(ctx context.Context, callerID primitive.ObjectID) ([]model.Donation, error) {
	return s.donations.ListByUser(ctx, callerID)
}

func (s *donationService) AllPending(ctx context.Context) ([]model.Donation, error) {
	return s.donations.ListPending(ctx)
}

func (s *donationService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Donation, error) {
	donation, err := s.donations.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

func (s *donationService) UpdateStatus(ctx context.Context, callerID, id primitive.ObjectID, status string) (*model.Donation, error) {
	if !model.ValidDonationStatus(status) {
		return nil, ErrInvalidStatus
	}

	donation, err := s.donations.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	if err := checkOwner(donation.UserID, callerID); err != nil {
		return nil, err
	}

	if err := s.donations.UpdateFields(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	donation.Status = status

	return donation, nil
}

func (s *donationService) Delete(ctx context.Context, callerID, id primitive.ObjectID) error {
	donation, err := s.donations.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrDonationNotFound
		}
		return err
	}

	if err := checkOwner(donation.UserID, callerID); err != nil {
		return err
	}

	if err := s.donations.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.activities.RemoveBySource(ctx, callerID, model.ActivityDonation, id); err != nil {
		s.logger.Warn("donation deleted but ledger cascade failed",
			zap.String("donation_id", id.Hex()), zap.Error(err))
	}

	return nil
}

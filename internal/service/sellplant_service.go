package service

import (
	"context"
	"strings"

	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CreateSellPlantInput struct {
	PlantName string
	PlantType string
	Price     float64
	Amount    int64
	Image     string
}

type UpdateSellPlantInput struct {
	PlantName string
	PlantType string
	Price     *float64
	Amount    *int64
	Image     string
	Status    string
}

type CreatedSellPlant struct {
	Listing  *model.SellPlant    `json:"sellPlant"`
	Activity model.ActivityEntry `json:"activity"`
}

type SellPlantService interface {
	Create(ctx context.Context, callerID primitive.ObjectID, in CreateSellPlantInput) (*CreatedSellPlant, error)
	MyListings(ctx context.Context, callerID primitive.ObjectID) ([]model.SellPlant, error)
	AllAvailable(ctx context.Context) ([]model.SellPlant, error)
	// Search is the marketplace search over available listings.
	Search(ctx context.Context, query string) ([]model.SellPlant, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.SellPlant, error)
	Update(ctx context.Context, callerID, id primitive.ObjectID, in UpdateSellPlantInput) (*model.SellPlant, error)
	Delete(ctx context.Context, callerID, id primitive.ObjectID) error
}

type sellPlantService struct {
	listings   repo.SellPlantRepository
	users      repo.UserRepository
	activities ActivityService
	logger     *zap.Logger
}

func NewSellPlantService(
	listings repo.SellPlantRepository,
	users repo.UserRepository,
	activities ActivityService,
	logger *zap.Logger,
) SellPlantService {
	return &sellPlantService{
		listings:   listings,
		users:      users,
		activities: activities,
		logger:     logger,
	}
}

func (s *sellPlantService) Create(ctx context.Context, callerID primitive.ObjectID, in CreateSellPlantInput) (*CreatedSellPlant, error) {
	if err := requireFields(
		"plantName", in.PlantName,
		"plantType", in.PlantType,
	); err != nil {
		return nil, err
	}
	var missing []string
	if in.Price <= 0 {
		missing = append(missing, "price")
	}
	if in.Amount < 1 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	listing, err := s.listings.Insert(ctx, model.SellPlant{
		UserID:    callerID,
		PlantName: in.PlantName,
		PlantType: in.PlantType,
		Price:     in.Price,
		Amount:    in.Amount,
		Image:     in.Image,
		Status:    model.SellPlantAvailable,
		OwnerName: user.Name,
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedSellPlant{Listing: listing}

	entry, err := s.activities.Append(ctx, callerID, user.Name, model.ActivitySale, listing.ID,
		saleMessage(user.Name, in.Amount, in.PlantName, in.Price))
	if err != nil {
		s.logger.Warn("listing created but activity append failed",
			zap.String("listing_id", listing.ID.Hex()), zap.Error(err))
	} else {
		created.Activity = entry
	}

	return created, nil
}

func (s *sellPlantService) MyListings(ctx context.Context, callerID primitive.ObjectID) ([]model.SellPlant, error) {
	return s.listings.ListByUser(ctx, callerID)
}

func (s *sellPlantService) AllAvailable(ctx context.Context) ([]model.SellPlant, error) {
	return s.listings.ListAvailable(ctx)
}

func (s *sellPlantService) Search(ctx context.Context, query string) ([]model.SellPlant, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		// Browsing without a query is AllAvailable's job.
		return []model.SellPlant{}, nil
	}
	return s.listings.Search(ctx, query)
}

func (s *sellPlantService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.SellPlant, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *sellPlantService) Update(ctx context.Context, callerID, id primitive.ObjectID, in UpdateSellPlantInput) (*model.SellPlant, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	if err := checkOwner(listing.UserID, callerID); err != nil {
		return nil, err
	}

	update := bson.M{}
	if in.PlantName != "" {
		update["plant_name"] = in.PlantName
		listing.PlantName = in.PlantName
	}
	if in.PlantType != "" {
		update["plant_type"] = in.PlantType
		listing.PlantType = in.PlantType
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, &ValidationError{Fields: []string{"price"}}
		}
		update["price"] = *in.Price
		listing.Price = *in.Price
	}
	if in.Amount != nil {
		if *in.Amount < 1 {
			return nil, &ValidationError{Fields: []string{"amount"}}
		}
		update["amount"] = *in.Amount
		listing.Amount = *in.Amount
	}
	if in.Image != "" {
		update["image"] = in.Image
		listing.Image = in.Image
	}
	if in.Status != "" {
		if !model.ValidSellPlantStatus(in.Status) {
			return nil, ErrInvalidStatus
		}
		update["status"] = in.Status
		listing.Status = in.Status
	}

	if len(update) == 0 {
		return listing, nil
	}

	if err := s.listings.UpdateFields(ctx, id, update); err != nil {
		return nil, err
	}

	return listing, nil
}

func (s *sellPlantService) Delete(ctx context.Context, callerID, id primitive.ObjectID) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrListingNotFound
		}
		return err
	}

	if err := checkOwner(listing.UserID, callerID); err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.activities.RemoveBySource(ctx, callerID, model.ActivitySale, id); err != nil {
		s.logger.Warn("listing deleted but ledger cascade failed",
			zap.String("listing_id", id.Hex()), zap.Error(err))
	}

	return nil
}

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

// MaintenanceScheduler enqueues background maintenance work.
// Implemented by the asynq task distributor.
type MaintenanceScheduler interface {
	ScheduleRecommendationCleanup(ctx context.Context, userID primitive.ObjectID) error
}

type CreateSwapInput struct {
	HavePlantName string
	HaveQuantity  int64
	HaveImage     string
	NeedPlantName string
	NeedQuantity  int64
}

// CreatedSwap carries the new swap plus the derived ledger and
// recommendation payloads, so the client doesn't need a second round
// trip. Recommended is nil when the plant was already on the list.
type CreatedSwap struct {
	Swap        *model.Swap                `json:"swap"`
	Activity    model.ActivityEntry        `json:"activity"`
	Recommended *model.RecommendationEntry `json:"recommendedPlant,omitempty"`
}

type SwapService interface {
	Create(ctx context.Context, callerID primitive.ObjectID, in CreateSwapInput) (*CreatedSwap, error)
	MySwaps(ctx context.Context, callerID primitive.ObjectID) ([]model.Swap, error)
	RecommendedPlants(ctx context.Context, callerID primitive.ObjectID) ([]model.RecommendationEntry, error)
	AllOpen(ctx context.Context) ([]model.Swap, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Swap, error)
	UpdateStatus(ctx context.Context, callerID, id primitive.ObjectID, status string) (*model.Swap, error)
	Delete(ctx context.Context, callerID, id primitive.ObjectID) error
}

type swapService struct {
	swaps           repo.SwapRepository
	users           repo.UserRepository
	activities      ActivityService
	recommendations RecommendationService
	scheduler       MaintenanceScheduler
	logger          *zap.Logger
}

func NewSwapService(
	swaps repo.SwapRepository,
	users repo.UserRepository,
	activities ActivityService,
	recommendations RecommendationService,
	scheduler MaintenanceScheduler,
	logger *zap.Logger,
) SwapService {
	return &swapService{
		swaps:           swaps,
		users:           users,
		activities:      activities,
		recommendations: recommendations,
		scheduler:       scheduler,
		logger:          logger,
	}
}

func (s *swapService) Create(ctx context.Context, callerID primitive.ObjectID, in CreateSwapInput) (*CreatedSwap, error) {
	if err := requireFields(
		"havePlantName", in.HavePlantName,
		"needPlantName", in.NeedPlantName,
	); err != nil {
		return nil, err
	}
	if in.HaveQuantity < 1 || in.NeedQuantity < 1 {
		return nil, &ValidationError{Fields: []string{"haveQuantity", "needQuantity"}}
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	swap, err := s.swaps.Insert(ctx, model.Swap{
		UserID:        callerID,
		HavePlantName: in.HavePlantName,
		HaveQuantity:  in.HaveQuantity,
		HaveImage:     in.HaveImage,
		NeedPlantName: in.NeedPlantName,
		NeedQuantity:  in.NeedQuantity,
		Status:        model.SwapOpen,
		OwnerName:     user.Name,
	})
	if err != nil {
		return nil, err
	}

	// The swap is created even if the ledger or recommendation
	// writes fail; both are advisory.
	created := &CreatedSwap{Swap: swap}

	message := swapMessage(user.Name, in.NeedQuantity, in.NeedPlantName, in.HaveQuantity, in.HavePlantName)
	entry, err := s.activities.Append(ctx, callerID, user.Name, model.ActivitySwap, swap.ID, message)
	if err != nil {
		s.logger.Warn("swap created but activity append failed",
			zap.String("swap_id", swap.ID.Hex()), zap.Error(err))
	} else {
		created.Activity = entry
	}

	rec, err := s.recommendations.AddIfAbsent(ctx, callerID, in.NeedPlantName, swap.ID)
	if err != nil {
		s.logger.Warn("swap created but recommendation add failed",
			zap.String("swap_id", swap.ID.Hex()), zap.Error(err))
	} else {
		created.Recommended = rec
	}

	return created, nil
}

func (s *swapService) MySwaps(ctx context.Context, callerID primitive.ObjectID) ([]model.Swap, error) {
	return s.swaps.ListByUser(ctx, callerID)
}

// RecommendedPlants returns the caller's valid recommendations. The
// read itself is side-effect free; when stale entries are seen a
// cleanup task is scheduled instead of mutating inline.
func (s *swapService) RecommendedPlants(ctx context.Context, callerID primitive.ObjectID) ([]model.RecommendationEntry, error) {
	valid, invalidIDs, err := s.recommendations.ListValid(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if len(invalidIDs) > 0 && s.scheduler != nil {
		if err := s.scheduler.ScheduleRecommendationCleanup(ctx, callerID); err != nil {
			s.logger.Warn("failed to schedule recommendation cleanup",
				zap.String("user_id", callerID.Hex()), zap.Error(err))
		}
	}

	return valid, nil
}

func (s *swapService) AllOpen(ctx context.Context) ([]model.Swap, error) {
	return s.swaps.ListOpen(ctx)
}

func (s *swapService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Swap, error) {
	swap, err := s.swaps.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	return swap, nil
}

func (s *swapService) UpdateStatus(ctx context.Context, callerID, id primitive.ObjectID, status string) (*model.Swap, error) {
	if !model.ValidSwapStatus(status) {
		return nil, ErrInvalidStatus
	}

	swap, err := s.swaps.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}

	if err := checkOwner(swap.UserID, callerID); err != nil {
		return nil, err
	}

	if err := s.swaps.UpdateFields(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	swap.Status = status

	return swap, nil
}

func (s *swapService) Delete(ctx context.Context, callerID, id primitive.ObjectID) error {
	swap, err := s.swaps.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrSwapNotFound
		}
		return err
	}

	if err := checkOwner(swap.UserID, callerID); err != nil {
		return err
	}

	if err := s.swaps.Delete(ctx, id); err != nil {
		return err
	}

	// Cascade into the owner's embedded sequences. Failures leave
	// stale advisory entries; recommendations self-heal via Cleanup.
	if err := s.activities.RemoveBySource(ctx, callerID, model.ActivitySwap, id); err != nil {
		s.logger.Warn("swap deleted but ledger cascade failed",
			zap.String("swap_id", id.Hex()), zap.Error(err))
	}
	if err := s.recommendations.RemoveBySwap(ctx, callerID, id); err != nil {
		s.logger.Warn("swap deleted but recommendation cascade failed",
			zap.String("swap_id", id.Hex()), zap.Error(err))
	}

	return nil
}

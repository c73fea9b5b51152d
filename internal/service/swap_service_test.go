package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devimrittika/Green-Planet/internal/model"

	"go.uber.org/zap"
)

func newSwapFixture() (*fakeUserRepo, *fakeSwapRepo, *fakeScheduler, SwapService) {
	users := newFakeUserRepo()
	swaps := newFakeSwapRepo()
	scheduler := &fakeScheduler{}
	logger := zap.NewNop()
	activities := NewActivityService(users, nil, logger)
	recommendations := NewRecommendationService(users, swaps, logger)
	svc := NewSwapService(swaps, users, activities, recommendations, scheduler, logger)
	return users, swaps, scheduler, svc
}

func TestCreateSwapWritesLedgerAndRecommendation(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	created, err := svc.Create(context.Background(), userID, CreateSwapInput{
		HavePlantName: "Tulsi",
		HaveQuantity:  2,
		NeedPlantName: "Rose",
		NeedQuantity:  3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Swap.Status != model.SwapOpen {
		t.Errorf("status = %q, want open", created.Swap.Status)
	}
	if created.Swap.OwnerName != "Mittika" {
		t.Errorf("owner name = %q", created.Swap.OwnerName)
	}

	want := "Mittika wants 3 Rose plants in exchange for 2 Tulsi plants"
	if created.Activity.Message != want {
		t.Errorf("activity message = %q, want %q", created.Activity.Message, want)
	}
	if created.Activity.SourceID != created.Swap.ID {
		t.Error("activity source should reference the swap")
	}

	if created.Recommended == nil || created.Recommended.PlantName != "Rose" {
		t.Fatalf("recommended = %+v, want Rose", created.Recommended)
	}

	stored, _ := users.GetByID(context.Background(), userID)
	if len(stored.Activities) != 1 || len(stored.RecommendedPlants) != 1 {
		t.Fatalf("ledger/recommendations = %d/%d, want 1/1",
			len(stored.Activities), len(stored.RecommendedPlants))
	}
}

func TestCreateSwapSingularMessage(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	created, err := svc.Create(context.Background(), userID, CreateSwapInput{
		HavePlantName: "Tulsi",
		HaveQuantity:  1,
		NeedPlantName: "Rose",
		NeedQuantity:  1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := "Mittika wants 1 Rose plant in exchange for 1 Tulsi plant"
	if created.Activity.Message != want {
		t.Errorf("activity message = %q, want %q", created.Activity.Message, want)
	}
}

func TestCreateSwapValidation(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	_, err := svc.Create(context.Background(), userID, CreateSwapInput{
		HaveQuantity: 1,
		NeedQuantity: 1,
	})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("got %v, want ValidationError", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateSwapInput{
		HavePlantName: "Tulsi",
		NeedPlantName: "Rose",
	})
	if !errors.As(err, &validation) {
		t.Fatalf("zero quantities: got %v, want ValidationError", err)
	}
}

func TestCreateSwapSecondSameNeedSkipsRecommendation(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	in := CreateSwapInput{HavePlantName: "Tulsi", HaveQuantity: 1, NeedPlantName: "Mint", NeedQuantity: 1}
	if _, err := svc.Create(context.Background(), userID, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	in.NeedPlantName = "mint"
	second, err := svc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Recommended != nil {
		t.Error("duplicate need should not add a recommendation")
	}

	stored, _ := users.GetByID(context.Background(), userID)
	if len(stored.RecommendedPlants) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(stored.RecommendedPlants))
	}
}

func TestUpdateSwapStatusOwnership(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	ownerID := users.add(model.User{Name: "Owner", Email: "owner@example.com"})
	strangerID := users.add(model.User{Name: "Stranger", Email: "s@example.com"})

	created, err := svc.Create(context.Background(), ownerID, CreateSwapInput{
		HavePlantName: "Tulsi", HaveQuantity: 1, NeedPlantName: "Rose", NeedQuantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), strangerID, created.Swap.ID, model.SwapClosed); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger update: got %v, want ErrNotOwner", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), ownerID, created.Swap.ID, "paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status: got %v, want ErrInvalidStatus", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), ownerID, created.Swap.ID, model.SwapClosed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != model.SwapClosed {
		t.Errorf("status = %q, want closed", updated.Status)
	}
}

func TestClosedSwapInvalidatesRecommendationOnRead(t *testing.T) {
	users, _, scheduler, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	created, err := svc.Create(context.Background(), userID, CreateSwapInput{
		HavePlantName: "Tulsi", HaveQuantity: 1, NeedPlantName: "Mint", NeedQuantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), userID, created.Swap.ID, model.SwapClosed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	valid, err := svc.RecommendedPlants(context.Background(), userID)
	if err != nil {
		t.Fatalf("RecommendedPlants: %v", err)
	}
	if len(valid) != 0 {
		t.Errorf("valid = %+v, want none after closing", valid)
	}
	if scheduler.count() != 1 {
		t.Errorf("cleanup scheduled %d times, want 1", scheduler.count())
	}

	// The read itself left the stored list untouched.
	stored, _ := users.GetByID(context.Background(), userID)
	if len(stored.RecommendedPlants) != 1 {
		t.Fatalf("read mutated stored list: %d entries", len(stored.RecommendedPlants))
	}
}

func TestDeleteSwapCascades(t *testing.T) {
	users, swaps, _, svc := newSwapFixture()
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	created, err := svc.Create(context.Background(), userID, CreateSwapInput{
		HavePlantName: "Tulsi", HaveQuantity: 1, NeedPlantName: "Mint", NeedQuantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), userID, created.Swap.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := swaps.GetByID(context.Background(), created.Swap.ID); err == nil {
		t.Error("swap still present after delete")
	}

	stored, _ := users.GetByID(context.Background(), userID)
	if len(stored.Activities) != 0 {
		t.Errorf("ledger entries remain: %d", len(stored.Activities))
	}
	if len(stored.RecommendedPlants) != 0 {
		t.Errorf("recommendations remain: %d", len(stored.RecommendedPlants))
	}
}

func TestDeleteSwapNotOwner(t *testing.T) {
	users, _, _, svc := newSwapFixture()
	ownerID := users.add(model.User{Name: "Owner", Email: "owner@example.com"})
	strangerID := users.add(model.User{Name: "Stranger", Email: "s@example.com"})

	created, err := svc.Create(context.Background(), ownerID, CreateSwapInput{
		HavePlantName: "Tulsi", HaveQuantity: 1, NeedPlantName: "Mint", NeedQuantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), strangerID, created.Swap.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
}

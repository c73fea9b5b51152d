package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/model"

	"go.uber.org/zap"
)

const testTokenSecret = "0123456789abcdef0123456789abcdef"

func newUserFixture(t *testing.T) (*fakeUserRepo, UserService) {
	t.Helper()
	users := newFakeUserRepo()
	tokens, err := auth.NewJWTManager(testTokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	svc := NewUserService(users, newFakeBlogRepo(), newFakeDonationRepo(),
		newFakeSellPlantRepo(), newFakeSwapRepo(), tokens, zap.NewNop())
	return users, svc
}

func TestRegisterIssuesToken(t *testing.T) {
	_, svc := newUserFixture(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Mittika",
		Email:    " Mittika@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.Token == "" {
		t.Error("no token issued")
	}
	if result.User.Email != "mittika@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", result.User.Email)
	}
	if result.User.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newUserFixture(t)

	in := RegisterInput{Name: "Mittika", Email: "m@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	in.Name = "Other"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register: got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterUsernameTaken(t *testing.T) {
	users, svc := newUserFixture(t)
	users.add(model.User{Name: "First", Email: "f@example.com", Username: "plantlover"})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Mittika", Email: "m@example.com", Password: "secret123", Username: "plantlover",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, svc := newUserFixture(t)

	var validation *ValidationError
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Mittika"})
	if !errors.As(err, &validation) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(validation.Fields) != 2 {
		t.Errorf("missing fields = %v, want email and password", validation.Fields)
	}
}

func TestLogin(t *testing.T) {
	_, svc := newUserFixture(t)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Mittika", Email: "m@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(context.Background(), "M@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("no token issued")
	}

	if _, err := svc.Login(context.Background(), "m@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestProfileCounts(t *testing.T) {
	users := newFakeUserRepo()
	blogs := newFakeBlogRepo()
	swaps := newFakeSwapRepo()
	tokens, err := auth.NewJWTManager(testTokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	logger := zap.NewNop()
	svc := NewUserService(users, blogs, newFakeDonationRepo(),
		newFakeSellPlantRepo(), swaps, tokens, logger)

	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})
	for i := 0; i < 3; i++ {
		if _, err := blogs.Insert(context.Background(), model.Blog{
			UserID: userID, Title: "t", Content: "c", Visibility: model.VisibilityPublic,
		}); err != nil {
			t.Fatalf("Insert blog: %v", err)
		}
	}
	if _, err := swaps.Insert(context.Background(), model.Swap{
		UserID: userID, Status: model.SwapOpen,
	}); err != nil {
		t.Fatalf("Insert swap: %v", err)
	}

	profile, err := svc.Profile(context.Background(), userID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(profile.Blogs) != 3 || len(profile.Swaps) != 1 {
		t.Errorf("posts = %d blogs %d swaps, want 3 and 1", len(profile.Blogs), len(profile.Swaps))
	}
	if profile.BlogCount != 3 || profile.SwapCount != 1 {
		t.Errorf("counts = blogs %d swaps %d, want 3 and 1", profile.BlogCount, profile.SwapCount)
	}
	if profile.DonationCount != 0 || profile.ListingCount != 0 {
		t.Errorf("empty collections should count zero, got donations %d listings %d",
			profile.DonationCount, profile.ListingCount)
	}
}

func TestUpdateProfile(t *testing.T) {
	users, svc := newUserFixture(t)
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com", Username: "mittika"})
	users.add(model.User{Name: "Other", Email: "o@example.com", Username: "gardener"})

	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Phone: "01700000000",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Phone != "01700000000" || updated.Name != "Mittika" {
		t.Errorf("partial update wrong: %+v", updated)
	}

	// Keeping your own username is not a conflict.
	if _, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Username: "mittika",
	}); err != nil {
		t.Errorf("own username: %v", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Username: "gardener",
	}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("taken username: got %v, want ErrUsernameTaken", err)
	}
}

func TestAdminUpdate(t *testing.T) {
	users, svc := newUserFixture(t)
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	promote := true
	updated, err := svc.AdminUpdate(context.Background(), userID, AdminUpdateInput{
		Email:   "New@Example.com",
		IsAdmin: &promote,
	})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("email = %q, want normalized", updated.Email)
	}
	if !updated.IsAdmin {
		t.Error("admin flag not set")
	}
	if updated.Name != "Mittika" {
		t.Errorf("name changed unexpectedly: %q", updated.Name)
	}
}

func TestDeleteUser(t *testing.T) {
	users, svc := newUserFixture(t)
	userID := users.add(model.User{Name: "Mittika", Email: "m@example.com"})

	if err := svc.Delete(context.Background(), userID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), userID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second Delete: got %v, want ErrUserNotFound", err)
	}
}

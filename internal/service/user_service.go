package service

import (
	"context"
	"strings"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Phone    string
	Address  string
}

// AdminUpdateInput is the admin-only edit surface. Email is editable
// here, unlike self-service profile updates.
type AdminUpdateInput struct {
	Name    string
	Email   string
	IsAdmin *bool
}

type UpdateProfileInput struct {
	Name           string
	Username       string
	Phone          string
	Address        string
	ProfilePicture string
	Password       string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Profile aggregates the user document with everything the user has
// posted, for the profile page.
type Profile struct {
	User      *model.User       `json:"user"`
	Blogs     []model.Blog      `json:"blogs"`
	Donations []model.Donation  `json:"donations"`
	Listings  []model.SellPlant `json:"sellPlants"`
	Swaps     []model.Swap      `json:"swaps"`

	BlogCount     int64 `json:"blogCount"`
	DonationCount int64 `json:"donationCount"`
	ListingCount  int64 `json:"sellPlantCount"`
	SwapCount     int64 `json:"swapCount"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Profile(ctx context.Context, id primitive.ObjectID) (*Profile, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, in UpdateProfileInput) (*model.User, error)
	AdminUpdate(ctx context.Context, id primitive.ObjectID, in AdminUpdateInput) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	users     repo.UserRepository
	blogs     repo.BlogRepository
	donations repo.DonationRepository
	listings  repo.SellPlantRepository
	swaps     repo.SwapRepository
	tokens    *auth.JWTManager
	logger    *zap.Logger
}

func NewUserService(
	users repo.UserRepository,
	blogs repo.BlogRepository,
	donations repo.DonationRepository,
	listings repo.SellPlantRepository,
	swaps repo.SwapRepository,
	tokens *auth.JWTManager,
	logger *zap.Logger,
) UserService {
	return &userService{
		users:     users,
		blogs:     blogs,
		donations: donations,
		listings:  listings,
		swaps:     swaps,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := requireFields(
		"name", in.Name,
		"email", in.Email,
		"password", in.Password,
	); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		taken, err := s.users.UsernameTaken(ctx, in.Username, primitive.NilObjectID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	user, err := s.users.Create(ctx, model.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hashed,
		Phone:    in.Phone,
		Address:  in.Address,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.CreateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := requireFields("email", email, "password", password); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}

	if profile.Blogs, err = s.blogs.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Donations, err = s.donations.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Listings, err = s.listings.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Swaps, err = s.swaps.ListByUser(ctx, id); err != nil {
		return nil, err
	}

	profile.BlogCount = int64(len(profile.Blogs))
	profile.DonationCount = int64(len(profile.Donations))
	profile.ListingCount = int64(len(profile.Listings))
	profile.SwapCount = int64(len(profile.Swaps))

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in UpdateProfileInput) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if in.Name != "" {
		update["name"] = in.Name
		user.Name = in.Name
	}
	if in.Username != "" && in.Username != user.Username {
		taken, err := s.users.UsernameTaken(ctx, in.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		update["username"] = in.Username
		user.Username = in.Username
	}
	if in.Phone != "" {
		update["phone"] = in.Phone
		user.Phone = in.Phone
	}
	if in.Address != "" {
		update["address"] = in.Address
		user.Address = in.Address
	}
	if in.ProfilePicture != "" {
		update["profile_picture"] = in.ProfilePicture
		user.ProfilePicture = in.ProfilePicture
	}
	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		update["password"] = hashed
		user.Password = hashed
	}

	if len(update) == 0 {
		return user, nil
	}

	if err := s.users.UpdateFields(ctx, id, update); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) AdminUpdate(ctx context.Context, id primitive.ObjectID, in AdminUpdateInput) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if in.Name != "" {
		update["name"] = in.Name
		user.Name = in.Name
	}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		update["email"] = email
		user.Email = email
	}
	if in.IsAdmin != nil {
		update["is_admin"] = *in.IsAdmin
		user.IsAdmin = *in.IsAdmin
	}

	if len(update) == 0 {
		return user, nil
	}

	if err := s.users.UpdateFields(ctx, id, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user updated by admin", zap.String("user_id", id.Hex()))
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Delete removes the user document. Content the user created stays;
// its owner_name snapshot keeps community views readable.
func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"sort"
	"sync"

	"github.com/devimrittika/Green-Planet/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User

	pushActivityCalls int
	pullByIDCalls     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserRepo) add(user model.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = &user
	return user.ID
}

func (f *fakeUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	user.ID = primitive.NewObjectID()
	if user.Activities == nil {
		user.Activities = []model.ActivityEntry{}
	}
	if user.RecommendedPlants == nil {
		user.RecommendedPlants = []model.RecommendationEntry{}
	}
	f.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	copied.Activities = append([]model.ActivityEntry(nil), user.Activities...)
	copied.RecommendedPlants = append([]model.RecommendationEntry(nil), user.RecommendedPlants...)
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UsernameTaken(ctx context.Context, username string, excluding primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username && user.ID != excluding {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := update["name"].(string); ok {
		user.Name = v
	}
	if v, ok := update["username"].(string); ok {
		user.Username = v
	}
	if v, ok := update["password"].(string); ok {
		user.Password = v
	}
	if v, ok := update["email"].(string); ok {
		for _, other := range f.users {
			if other.ID != id && other.Email == v {
				return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
			}
		}
		user.Email = v
	}
	if v, ok := update["is_admin"].(bool); ok {
		user.IsAdmin = v
	}
	if v, ok := update["phone"].(string); ok {
		user.Phone = v
	}
	if v, ok := update["address"].(string); ok {
		user.Address = v
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) PushActivity(ctx context.Context, userID primitive.ObjectID, entry model.ActivityEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	f.pushActivityCalls++
	user.Activities = append([]model.ActivityEntry{entry}, user.Activities...)
	return nil
}

func (f *fakeUserRepo) PullActivitiesBySource(ctx context.Context, userID primitive.ObjectID, entryType string, sourceID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := user.Activities[:0]
	for _, e := range user.Activities {
		if e.Type == entryType && e.SourceID == sourceID {
			continue
		}
		kept = append(kept, e)
	}
	user.Activities = kept
	return nil
}

func (f *fakeUserRepo) PushRecommendation(ctx context.Context, userID primitive.ObjectID, entry model.RecommendationEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.RecommendedPlants = append([]model.RecommendationEntry{entry}, user.RecommendedPlants...)
	return nil
}

func (f *fakeUserRepo) PullRecommendationsByID(ctx context.Context, userID primitive.ObjectID, entryIDs []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(entryIDs) == 0 {
		return nil
	}
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	f.pullByIDCalls++
	drop := make(map[primitive.ObjectID]bool, len(entryIDs))
	for _, id := range entryIDs {
		drop[id] = true
	}
	kept := user.RecommendedPlants[:0]
	for _, e := range user.RecommendedPlants {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	user.RecommendedPlants = kept
	return nil
}

func (f *fakeUserRepo) PullRecommendationsBySwap(ctx context.Context, userID primitive.ObjectID, swapID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := user.RecommendedPlants[:0]
	for _, e := range user.RecommendedPlants {
		if e.FromSwap != nil && *e.FromSwap == swapID {
			continue
		}
		kept = append(kept, e)
	}
	user.RecommendedPlants = kept
	return nil
}

type fakeSwapRepo struct {
	mu    sync.Mutex
	swaps map[primitive.ObjectID]*model.Swap
}

func newFakeSwapRepo() *fakeSwapRepo {
	return &fakeSwapRepo{swaps: make(map[primitive.ObjectID]*model.Swap)}
}

func (f *fakeSwapRepo) Insert(ctx context.Context, swap model.Swap) (*model.Swap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap.ID = primitive.NewObjectID()
	f.swaps[swap.ID] = &swap
	copied := swap
	return &copied, nil
}

func (f *fakeSwapRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Swap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *swap
	return &copied, nil
}

func (f *fakeSwapRepo) GetOpenForUser(ctx context.Context, id, userID primitive.ObjectID) (*model.Swap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[id]
	if !ok || swap.UserID != userID || swap.Status != model.SwapOpen {
		return nil, mongo.ErrNoDocuments
	}
	copied := *swap
	return &copied, nil
}

func (f *fakeSwapRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Swap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Swap
	for _, swap := range f.swaps {
		if swap.UserID == userID {
			out = append(out, *swap)
		}
	}
	sortSwapsNewestFirst(out)
	return out, nil
}

func (f *fakeSwapRepo) ListOpen(ctx context.Context) ([]model.Swap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Swap
	for _, swap := range f.swaps {
		if swap.Status == model.SwapOpen {
			out = append(out, *swap)
		}
	}
	sortSwapsNewestFirst(out)
	return out, nil
}

func (f *fakeSwapRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := update["status"].(string); ok {
		swap.Status = v
	}
	return nil
}

func (f *fakeSwapRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.swaps, id)
	return nil
}

func sortSwapsNewestFirst(swaps []model.Swap) {
	sort.SliceStable(swaps, func(i, j int) bool {
		return swaps[i].CreatedAt.After(swaps[j].CreatedAt)
	})
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[primitive.ObjectID]*model.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[primitive.ObjectID]*model.Blog)}
}

func (f *fakeBlogRepo) Insert(ctx context.Context, blog model.Blog) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog.ID = primitive.NewObjectID()
	f.blogs[blog.ID] = &blog
	copied := blog
	return &copied, nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog, ok := f.blogs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *blog
	return &copied, nil
}

func (f *fakeBlogRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Blog
	for _, blog := range f.blogs {
		if blog.UserID == userID {
			out = append(out, *blog)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) ListPublic(ctx context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Blog
	for _, blog := range f.blogs {
		if blog.Visibility == model.VisibilityPublic {
			out = append(out, *blog)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) Highlights(ctx context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Blog
	for _, blog := range f.blogs {
		out = append(out, *blog)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}

func (f *fakeBlogRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog, ok := f.blogs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	blog.Views++
	return nil
}

func (f *fakeBlogRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog, ok := f.blogs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := update["title"].(string); ok {
		blog.Title = v
	}
	if v, ok := update["visibility"].(string); ok {
		blog.Visibility = v
	}
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blogs, id)
	return nil
}

type fakeDonationRepo struct {
	mu        sync.Mutex
	donations map[primitive.ObjectID]*model.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[primitive.ObjectID]*model.Donation)}
}

func (f *fakeDonationRepo) Insert(ctx context.Context, donation model.Donation) (*model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation.ID = primitive.NewObjectID()
	f.donations[donation.ID] = &donation
	copied := donation
	return &copied, nil
}

func (f *fakeDonationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.donations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *donation
	return &copied, nil
}

func (f *fakeDonationRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Donation
	for _, donation := range f.donations {
		if donation.UserID == userID {
			out = append(out, *donation)
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) ListPending(ctx context.Context) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Donation
	for _, donation := range f.donations {
		if donation.Status == model.DonationPending {
			out = append(out, *donation)
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.donations[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := update["status"].(string); ok {
		donation.Status = v
	}
	return nil
}

func (f *fakeDonationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.donations, id)
	return nil
}

// fakeScheduler records cleanup scheduling requests.
type fakeScheduler struct {
	mu    sync.Mutex
	calls []primitive.ObjectID
}

func (f *fakeScheduler) ScheduleRecommendationCleanup(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
	return nil
}

func (f *fakeScheduler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

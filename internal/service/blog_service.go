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

type CreateBlogInput struct {
	Title      string
	Topic      string
	Content    string
	Image      string
	Visibility string
}

type UpdateBlogInput struct {
	Title      string
	Topic      string
	Content    string
	Image      string
	Visibility string
}

type CreatedBlog struct {
	Blog      *model.Blog              `json:"blog"`
	Activity  model.ActivityEntry      `json:"activity"`
	Highlight model.CommunityHighlight `json:"communityHighlight"`
}

type BlogService interface {
	Create(ctx context.Context, callerID primitive.ObjectID, in CreateBlogInput) (*CreatedBlog, error)
	MyBlogs(ctx context.Context, callerID primitive.ObjectID) ([]model.Blog, error)
	AllPublic(ctx context.Context) ([]model.Blog, error)
	Highlights(ctx context.Context) ([]model.CommunityHighlight, error)
	// GetByID is public and counts the view.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error)
	Update(ctx context.Context, callerID, id primitive.ObjectID, in UpdateBlogInput) (*model.Blog, error)
	Delete(ctx context.Context, callerID, id primitive.ObjectID) error
}

type blogService struct {
	blogs      repo.BlogRepository
	users      repo.UserRepository
	activities ActivityService
	logger     *zap.Logger
}

func NewBlogService(
	blogs repo.BlogRepository,
	users repo.UserRepository,
	activities ActivityService,
	logger *zap.Logger,
) BlogService {
	return &blogService{
		blogs:      blogs,
		users:      users,
		activities: activities,
		logger:     logger,
	}
}

func (s *blogService) Create(ctx context.Context, callerID primitive.ObjectID, in CreateBlogInput) (*CreatedBlog, error) {
	if err := requireFields(
		"title", in.Title,
		"topic", in.Topic,
		"content", in.Content,
	); err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if visibility != model.VisibilityPublic && visibility != model.VisibilityCommunity {
		return nil, &ValidationError{Fields: []string{"visibility"}}
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	blog, err := s.blogs.Insert(ctx, model.Blog{
		UserID:     callerID,
		Title:      in.Title,
		Topic:      in.Topic,
		Content:    in.Content,
		Image:      in.Image,
		Visibility: visibility,
		AuthorName: user.Name,
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedBlog{
		Blog: blog,
		Highlight: model.CommunityHighlight{
			ID:        blog.ID,
			Type:      model.ActivityBlog,
			Title:     blog.Title,
			Topic:     blog.Topic,
			Author:    user.Name,
			CreatedAt: blog.CreatedAt,
		},
	}

	entry, err := s.activities.Append(ctx, callerID, user.Name, model.ActivityBlog, blog.ID, blogMessage(user.Name, in.Title))
	if err != nil {
		s.logger.Warn("blog created but activity append failed",
			zap.String("blog_id", blog.ID.Hex()), zap.Error(err))
	} else {
		created.Activity = entry
	}

	return created, nil
}

func (s *blogService) MyBlogs(ctx context.Context, callerID primitive.ObjectID) ([]model.Blog, error) {
	return s.blogs.ListByUser(ctx, callerID)
}

func (s *blogService) AllPublic(ctx context.Context) ([]model.Blog, error) {
	return s.blogs.ListPublic(ctx)
}

// Highlights are derived fresh from the blog collection; deleting a
// blog drops it from highlights without any cascade.
func (s *blogService) Highlights(ctx context.Context) ([]model.CommunityHighlight, error) {
	blogs, err := s.blogs.Highlights(ctx)
	if err != nil {
		return nil, err
	}

	highlights := make([]model.CommunityHighlight, 0, len(blogs))
	for _, blog := range blogs {
		author := blog.AuthorName
		if author == "" {
			author = "Anonymous"
		}
		highlights = append(highlights, model.CommunityHighlight{
			ID:        blog.ID,
			Type:      model.ActivityBlog,
			Title:     blog.Title,
			Topic:     blog.Topic,
			Author:    author,
			CreatedAt: blog.CreatedAt,
		})
	}
	return highlights, nil
}

func (s *blogService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if err := s.blogs.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("failed to count blog view", zap.String("blog_id", id.Hex()), zap.Error(err))
	} else {
		blog.Views++
	}

	return blog, nil
}

func (s *blogService) Update(ctx context.Context, callerID, id primitive.ObjectID, in UpdateBlogInput) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if err := checkOwner(blog.UserID, callerID); err != nil {
		return nil, err
	}

	update := bson.M{}
	if in.Title != "" {
		update["title"] = in.Title
		blog.Title = in.Title
	}
	if in.Topic != "" {
		update["topic"] = in.Topic
		blog.Topic = in.Topic
	}
	if in.Content != "" {
		update["content"] = in.Content
		blog.Content = in.Content
	}
	if in.Image != "" {
		update["image"] = in.Image
		blog.Image = in.Image
	}
	if in.Visibility != "" {
		if in.Visibility != model.VisibilityPublic && in.Visibility != model.VisibilityCommunity {
			return nil, &ValidationError{Fields: []string{"visibility"}}
		}
		update["visibility"] = in.Visibility
		blog.Visibility = in.Visibility
	}

	if len(update) == 0 {
		return blog, nil
	}

	if err := s.blogs.UpdateFields(ctx, id, update); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, callerID, id primitive.ObjectID) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrBlogNotFound
		}
		return err
	}

	if err := checkOwner(blog.UserID, callerID); err != nil {
		return err
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.activities.RemoveBySource(ctx, callerID, model.ActivityBlog, id); err != nil {
		s.logger.Warn("blog deleted but ledger cascade failed",
			zap.String("blog_id", id.Hex()), zap.Error(err))
	}

	return nil
}

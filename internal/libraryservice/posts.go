package libraryservice

import (
	"context"
	"fmt"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/helper"
)

type PostService struct {
	PostRepo interfaces.PostRepository
	UserRepo interfaces.UserRepository
	Logger   interfaces.Logger
}

var _ interfaces.PostService = (*PostService)(nil)

// NewPostService creates a post service. Authors are looked up in userRepo, which may
// live in a different store than the posts.
func NewPostService(repo interfaces.PostRepository, userRepo interfaces.UserRepository, logger interfaces.Logger) *PostService {
	return &PostService{PostRepo: repo, UserRepo: userRepo, Logger: logger}
}

// CreatePost validates post, checks that its author is a user and stores it.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "author", post.AuthorID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "author", post.AuthorID)

	if err := validation.PostSchema.Check(post); err != nil {
		return nil, err
	}

	author, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.User, error) {
		return s.UserRepo.GetUserByID(ctx, post.AuthorID)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingAuthor, "func", funcName, "author", post.AuthorID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingAuthor, err)
	}
	if author == nil {
		s.Logger.Warn("post author does not exist", "func", funcName, "author", post.AuthorID)
		return nil, ErrAuthorNotFound
	}

	id, err := dberrors.RetryOnDeadlock(ctx, func(ctx context.Context) (int64, error) {
		return s.PostRepo.AddPost(ctx, post)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSavePost, "func", funcName, "author", post.AuthorID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSavePost, err)
	}
	post.ID = id

	s.Logger.Info("Post created", "func", funcName, "ID", id)
	return post, nil
}

// GetAllPosts returns every post, newest first.
func (s *PostService) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := dberrors.RetryOnce(ctx, s.PostRepo.GetAllPosts)
	if err != nil {
		s.Logger.Error(ErrRetrievingPost, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingPost, err)
	}
	return posts, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	if id <= 0 {
		return nil, ErrInvalidPostID
	}
	post, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Post, error) {
		return s.PostRepo.GetPostByID(ctx, id)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingPost, "ID", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingPost, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidPostID
	}
	return deleteByID(ctx, s.Logger, id, s.PostRepo.DeletePost, ErrPostNotFound, "Post deleted")
}

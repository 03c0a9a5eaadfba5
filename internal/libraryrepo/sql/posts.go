package sql

import (
	"context"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/internal/models"
)

// PostRepository implements interfaces.PostRepository.
type PostRepository struct {
	store
}

var _ interfaces.PostRepository = (*PostRepository)(nil)

func NewPostRepository(dbClient interfaces.DBClient, opts Options, logger interfaces.Logger) (*PostRepository, error) {
	s, err := newStore(dbClient, opts, logger, constants.PostsTable, constants.PostEntity)
	if err != nil {
		return nil, err
	}
	return &PostRepository{store: s}, nil
}

func (r *PostRepository) AddPost(ctx context.Context, post *models.Post) (int64, error) {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	return r.insert(ctx, map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"author_id":  post.AuthorID,
		"created_at": post.CreatedAt,
	})
}

// GetAllPosts returns every post, newest first.
func (r *PostRepository) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	return findAll[models.Post](ctx, r.store, &interfaces.FindOptions{SortBy: "created_at", Descending: true})
}

func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return findByID[models.Post](ctx, r.store, id)
}

func (r *PostRepository) DeletePost(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, id)
}

func (r *PostRepository) EnsureSchema(ctx context.Context) error {
	return r.ensureSchema(ctx)
}

package sql

import (
	"context"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/internal/models"
)

// ReviewRepository implements interfaces.ReviewRepository.
type ReviewRepository struct {
	store
}

var _ interfaces.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(dbClient interfaces.DBClient, opts Options, logger interfaces.Logger) (*ReviewRepository, error) {
	s, err := newStore(dbClient, opts, logger, constants.ReviewsTable, constants.ReviewEntity)
	if err != nil {
		return nil, err
	}
	return &ReviewRepository{store: s}, nil
}

func (r *ReviewRepository) AddReview(ctx context.Context, review *models.Review) (int64, error) {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	doc := reviewColumns(review)
	doc["created_at"] = review.CreatedAt
	return r.insert(ctx, doc)
}

func (r *ReviewRepository) GetAllReviews(ctx context.Context) ([]*models.Review, error) {
	return findAll[models.Review](ctx, r.store, &interfaces.FindOptions{SortBy: "id"})
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	return findByID[models.Review](ctx, r.store, id)
}

// UpdateReview rewrites the text, rating and moderation flag of a review.
func (r *ReviewRepository) UpdateReview(ctx context.Context, review *models.Review) (int64, error) {
	return r.updateByID(ctx, review.ID, reviewColumns(review))
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, id)
}

func (r *ReviewRepository) EnsureSchema(ctx context.Context) error {
	return r.ensureSchema(ctx)
}

func reviewColumns(review *models.Review) map[string]interface{} {
	return map[string]interface{}{
		"user_id":      review.UserID,
		"book_id":      review.BookID,
		"review_text":  review.ReviewText,
		"rating":       review.Rating,
		"is_moderated": review.IsModerated,
	}
}

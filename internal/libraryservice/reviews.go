package libraryservice

import (
	"context"
	"fmt"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
)

type ReviewService struct {
	ReviewRepo interfaces.ReviewRepository
	Logger     interfaces.Logger
}

var _ interfaces.ReviewService = (*ReviewService)(nil)

func NewReviewService(repo interfaces.ReviewRepository, logger interfaces.Logger) *ReviewService {
	return &ReviewService{ReviewRepo: repo, Logger: logger}
}

func (s *ReviewService) AddReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := validation.ReviewSchema.Check(review); err != nil {
		return nil, err
	}

	id, err := dberrors.RetryOnDeadlock(ctx, func(ctx context.Context) (int64, error) {
		return s.ReviewRepo.AddReview(ctx, review)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSaveReview, "user", review.UserID, "book", review.BookID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSaveReview, err)
	}
	review.ID = id

	s.Logger.Info("Review added", "ID", id, "user", review.UserID, "book", review.BookID)
	return review, nil
}

func (s *ReviewService) GetAllReviews(ctx context.Context) ([]*models.Review, error) {
	reviews, err := dberrors.RetryOnce(ctx, s.ReviewRepo.GetAllReviews)
	if err != nil {
		s.Logger.Error(ErrRetrievingReview, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingReview, err)
	}
	return reviews, nil
}

func (s *ReviewService) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	if id <= 0 {
		return nil, ErrInvalidReviewID
	}
	review, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Review, error) {
		return s.ReviewRepo.GetReviewByID(ctx, id)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingReview, "ID", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingReview, err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID <= 0 {
		return nil, ErrInvalidReviewID
	}
	if err := validation.ReviewSchema.Check(review); err != nil {
		return nil, err
	}

	matched, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return s.ReviewRepo.UpdateReview(ctx, review)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSaveReview, "ID", review.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSaveReview, err)
	}
	if matched == 0 {
		return nil, ErrReviewNotFound
	}
	s.Logger.Info("Review updated", "ID", review.ID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidReviewID
	}
	return deleteByID(ctx, s.Logger, id, s.ReviewRepo.DeleteReview, ErrReviewNotFound, "Review deleted")
}

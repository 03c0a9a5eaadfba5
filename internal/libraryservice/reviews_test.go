package libraryservice

import (
	"context"
	"testing"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces/mocks"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T) (*ReviewService, *mocks.MockReviewRepository) {
	t.Helper()
	repo := mocks.NewMockReviewRepository(t)
	return NewReviewService(repo, zerolog.NewNopLogger()), repo
}

func TestAddReview(t *testing.T) {
	tests := []struct {
		name     string
		review   *models.Review
		wantMsgs []string
	}{
		{name: "rating too high", review: &models.Review{ReviewText: "Great", Rating: 6}, wantMsgs: []string{"Rating must be between 1 and 5."}},
		{name: "rating zero", review: &models.Review{ReviewText: "Meh", Rating: 0}, wantMsgs: []string{"Rating must be between 1 and 5."}},
		{name: "empty", review: &models.Review{}, wantMsgs: []string{"reviewText is required.", "Rating must be between 1 and 5."}},
		{name: "valid", review: &models.Review{UserID: 1, BookID: 2, ReviewText: "Great", Rating: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newReviewService(t)
			if tt.wantMsgs == nil {
				repo.On("AddReview", mock.Anything, tt.review).Return(int64(13), nil)
			}

			got, err := svc.AddReview(context.Background(), tt.review)
			if tt.wantMsgs != nil {
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantMsgs, verr.Messages)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(13), got.ID)
		})
	}
}

func TestReviewLookupsUpdateDelete(t *testing.T) {
	svc, repo := newReviewService(t)
	ctx := context.Background()

	_, err := svc.GetReviewByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidReviewID)

	repo.On("GetReviewByID", mock.Anything, int64(5)).Return(nil, nil)
	_, err = svc.GetReviewByID(ctx, 5)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	repo.On("GetAllReviews", mock.Anything).Return([]*models.Review{}, nil)
	all, err := svc.GetAllReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	repo.On("UpdateReview", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	_, err = svc.UpdateReview(ctx, &models.Review{ID: 5, ReviewText: "ok", Rating: 3})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	missingUser := dberrors.Translate("review", dberrors.OpUpdate, dberrors.CodeForeignKeyChild, nil)
	repo.On("UpdateReview", mock.Anything, mock.Anything).Return(int64(0), missingUser).Once()
	_, err = svc.UpdateReview(ctx, &models.Review{ID: 6, UserID: 99, ReviewText: "ok", Rating: 3})
	assert.ErrorIs(t, err, missingUser)

	repo.On("DeleteReview", mock.Anything, int64(6)).Return(int64(1), nil)
	assert.NoError(t, svc.DeleteReview(ctx, 6))
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// ReviewService handles global app reviews. Reviews are not mess-scoped;
// any signed-in user may post, and only the author may change theirs.
type ReviewService struct {
	store storage.Store
}

// NewReviewService creates a ReviewService with the given storage backend.
func NewReviewService(store storage.Store) *ReviewService {
	return &ReviewService{store: store}
}

// ListReviews returns all reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.store.ListReviews(ctx)
	if err != nil {
		return nil, errInternal("failed to list reviews", err)
	}
	return reviews, nil
}

// AddReview posts a review for the acting user.
func (s *ReviewService) AddReview(ctx context.Context, actorEmail, author string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errValidation("rating must be between 1 and 5")
	}

	review := &models.Review{
		Author:      author,
		AuthorEmail: actorEmail,
		Rating:      rating,
		Comment:     comment,
	}
	if err := s.store.AddReview(ctx, review); err != nil {
		slog.Error("AddReview failed", "error", err)
		return nil, errInternal("failed to add review", err)
	}
	return review, nil
}

// UpdateReview changes the rating or comment; author only.
func (s *ReviewService) UpdateReview(ctx context.Context, actorEmail, reviewID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return errValidation("rating must be between 1 and 5")
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to load review", err)
	}
	if review.AuthorEmail != actorEmail {
		return errForbidden("only the author may update a review")
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.store.UpdateReview(ctx, review); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to update review", err)
	}
	return nil
}

// DeleteReview removes a review; author only.
func (s *ReviewService) DeleteReview(ctx context.Context, actorEmail, reviewID string) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to load review", err)
	}
	if review.AuthorEmail != actorEmail {
		return errForbidden("only the author may delete a review")
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to delete review", err)
	}
	return nil
}

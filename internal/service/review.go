package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// ReviewService enforces the review invariants: rating bounds, one review
// per (user, item), and owner-only mutation.
//
// OWNERSHIP IS CHECKED TWICE, DELIBERATELY:
//  1. auth.Authorize compares the caller's identity against the owner id
//     asserted by the request path — a mismatch is Forbidden (403).
//  2. The repository's owner-filtered UPDATE/DELETE predicate — zero rows
//     is NotFound (404). By then the caller IS the path's user, so 404
//     specifically means "no such review of yours", never "someone else's
//     review" — a foreign review's existence is not leaked.
type ReviewService struct {
	reviews  repository.ReviewRepository
	comments repository.CommentRepository
	items    repository.ItemRepository
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	reviews repository.ReviewRepository,
	comments repository.CommentRepository,
	items repository.ItemRepository,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		comments: comments,
		items:    items,
		logger:   logger,
	}
}

// validateReviewInput applies the shared create/update validation rules.
// Detected before any store access.
func validateReviewInput(content string, rating int) error {
	if strings.TrimSpace(content) == "" || rating == 0 {
		return apperror.ValidationFailed("", "Content and rating are required")
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return apperror.ValidationFailed("rating", "Rating must be between 1 and 5")
	}
	return nil
}

// Create adds identity's review of an item.
//
// Order of checks: input validation, item existence, then the duplicate
// pre-check. The UNIQUE(user_id, item_id) constraint inside reviews.Create
// settles any race between two concurrent duplicate checks; either path
// surfaces as the same Conflict.
func (s *ReviewService) Create(ctx context.Context, identity auth.Identity, itemID int64, content string, rating int) (*model.Review, error) {
	if err := validateReviewInput(content, rating); err != nil {
		return nil, err
	}

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForUserAndItem(ctx, identity.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("checking for existing review: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("You have already reviewed this item")
	}

	review := &model.Review{
		UserID:  identity.ID,
		ItemID:  itemID,
		Content: content,
		Rating:  rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}
	review.Username = identity.Username

	s.logger.Info("review created",
		slog.Int64("reviewID", review.ID),
		slog.Int64("userID", identity.ID),
		slog.Int64("itemID", itemID),
		slog.Int("rating", rating),
	)

	return review, nil
}

// ListForItem returns an item's reviews, newest first. The item must
// exist — an unknown item is NotFound, not an empty list.
func (s *ReviewService) ListForItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews for item %d: %w", itemID, err)
	}
	return reviews, nil
}

// Get returns a single review scoped to its item, with its comments
// attached in posting order.
func (s *ReviewService) Get(ctx context.Context, itemID, reviewID int64) (*model.Review, error) {
	review, err := s.reviews.GetByID(ctx, itemID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for review %d: %w", reviewID, err)
	}
	review.Comments = comments

	return review, nil
}

// ListMine returns the caller's own reviews, decorated with item names and
// categories.
func (s *ReviewService) ListMine(ctx context.Context, identity auth.Identity) ([]model.Review, error) {
	reviews, err := s.reviews.ListForUser(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews for user %d: %w", identity.ID, err)
	}
	return reviews, nil
}

// Update edits a review owned by the path's user.
//
// pathUserID is the owner id claimed by the request path; the Guard match
// against it comes first (403 on mismatch), then the owner-filtered update
// (404 on no matching row).
func (s *ReviewService) Update(ctx context.Context, identity auth.Identity, pathUserID, reviewID int64, content string, rating int) (*model.Review, error) {
	if err := auth.Authorize(identity, pathUserID); err != nil {
		return nil, err
	}
	if err := validateReviewInput(content, rating); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:      reviewID,
		UserID:  pathUserID,
		Content: content,
		Rating:  rating,
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review updated",
		slog.Int64("reviewID", reviewID),
		slog.Int64("userID", pathUserID),
	)

	return review, nil
}

// Delete removes a review owned by the path's user, and with it — via the
// store-level cascade — every comment referencing it.
func (s *ReviewService) Delete(ctx context.Context, identity auth.Identity, pathUserID, reviewID int64) error {
	if err := auth.Authorize(identity, pathUserID); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID, pathUserID); err != nil {
		return err
	}

	s.logger.Info("review deleted",
		slog.Int64("reviewID", reviewID),
		slog.Int64("userID", pathUserID),
	)

	return nil
}

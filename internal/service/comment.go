package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// CommentService handles comments on reviews. Same two-step ownership
// model as ReviewService: Guard first (403), owner-filtered statement
// second (404).
type CommentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	reviews repository.ReviewRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		reviews:  reviews,
		logger:   logger,
	}
}

// Create adds identity's comment to a review. The review must exist AND
// belong to the item named in the path — a review id under the wrong item
// is NotFound. No uniqueness rule: the same user may comment repeatedly.
func (s *CommentService) Create(ctx context.Context, identity auth.Identity, itemID, reviewID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	if _, err := s.reviews.GetByID(ctx, itemID, reviewID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("Review not found for this item")
		}
		return nil, fmt.Errorf("checking review %d: %w", reviewID, err)
	}

	comment := &model.Comment{
		UserID:   identity.ID,
		ReviewID: reviewID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	comment.Username = identity.Username

	s.logger.Info("comment created",
		slog.Int64("commentID", comment.ID),
		slog.Int64("userID", identity.ID),
		slog.Int64("reviewID", reviewID),
	)

	return comment, nil
}

// ListMine returns the caller's own comments, decorated with the parent
// review's content and the reviewed item.
func (s *CommentService) ListMine(ctx context.Context, identity auth.Identity) ([]model.Comment, error) {
	comments, err := s.comments.ListForUser(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for user %d: %w", identity.ID, err)
	}
	return comments, nil
}

// Update edits a comment owned by the path's user.
func (s *CommentService) Update(ctx context.Context, identity auth.Identity, pathUserID, commentID int64, content string) (*model.Comment, error) {
	if err := auth.Authorize(identity, pathUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	comment := &model.Comment{
		ID:      commentID,
		UserID:  pathUserID,
		Content: content,
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment updated",
		slog.Int64("commentID", commentID),
		slog.Int64("userID", pathUserID),
	)

	return comment, nil
}

// Delete removes a comment owned by the path's user.
func (s *CommentService) Delete(ctx context.Context, identity auth.Identity, pathUserID, commentID int64) error {
	if err := auth.Authorize(identity, pathUserID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID, pathUserID); err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		slog.Int64("commentID", commentID),
		slog.Int64("userID", pathUserID),
	)

	return nil
}

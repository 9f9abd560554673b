package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// ItemService reads the item catalog and derives rating summaries.
// Items are immutable from the API's perspective, so there are no
// mutating operations here.
type ItemService struct {
	items   repository.ItemRepository
	reviews repository.ReviewRepository
	logger  *slog.Logger
}

// NewItemService creates an ItemService.
func NewItemService(items repository.ItemRepository, reviews repository.ReviewRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		items:   items,
		reviews: reviews,
		logger:  logger,
	}
}

// ItemWithRating is an item decorated with its derived rating summary.
// The embedded structs flatten in JSON, matching the wire shape of a plain
// item plus average_rating and review_count.
type ItemWithRating struct {
	model.Item
	model.ItemRating
}

// List retrieves items filtered by an optional name search and category.
func (s *ItemService) List(ctx context.Context, search, category string) ([]model.Item, error) {
	items, err := s.items.List(ctx, repository.ItemFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	})
	if err != nil {
		s.logger.Error("failed to list items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Get retrieves a single item together with its mean rating and review
// count. The summary is recomputed on every call — an item with no reviews
// reports {0, 0}, never an error.
func (s *ItemService) Get(ctx context.Context, itemID int64) (*ItemWithRating, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviews.AggregateForItem(ctx, itemID)
	if err != nil {
		s.logger.Error("failed to aggregate ratings",
			slog.Int64("itemID", itemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("aggregating ratings for item %d: %w", itemID, err)
	}

	return &ItemWithRating{Item: *item, ItemRating: rating}, nil
}

package repository

import (
	"context"

	"github.com/sakif/review-hub/internal/model"
)

// ItemFilter narrows the item listing. Zero values mean "no filtering".
type ItemFilter struct {
	Search   string // case-insensitive substring match on name
	Category string // exact category match
}

// UserRepository persists user identities and their hashed credentials.
// Create rejects duplicate usernames and emails with apperror.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ItemRepository reads the seeded item catalog. Items are immutable from
// the API's perspective; Create exists for seeding and tests only.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
}

// ReviewRepository persists reviews and enforces their invariants:
// one review per (user, item), ratings within bounds, owner-only mutation.
//
// Update and Delete filter on BOTH the review id and the owner id; zero
// affected rows is reported as apperror.ErrNotFound. Delete removes the
// review's comments in the same logical operation (schema-level cascade).
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, itemID, reviewID int64) (*model.Review, error)
	ExistsForUserAndItem(ctx context.Context, userID, itemID int64) (bool, error)
	ListForItem(ctx context.Context, itemID int64) ([]model.Review, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, reviewID, ownerID int64) error
	AggregateForItem(ctx context.Context, itemID int64) (model.ItemRating, error)
}

// CommentRepository persists comments on reviews. Update and Delete follow
// the same owner-filtered predicate rule as reviews.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListForReview(ctx context.Context, reviewID int64) ([]model.Comment, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, commentID, ownerID int64) error
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// ReviewDB implements repository.ReviewRepository; obtain one via
// DB.Reviews().
type ReviewDB struct {
	conn *sql.DB
}

var _ repository.ReviewRepository = (*ReviewDB)(nil)

// Create inserts a new review.
//
// The service layer has already validated the rating bounds and checked for
// an existing (user, item) review. Under concurrent requests both
// pre-checks can pass for two writers; the UNIQUE(user_id, item_id)
// constraint rejects the loser here, and we re-classify that rejection as
// the same Conflict the pre-check would have produced. There is no wrapping
// transaction — the constraint is the authoritative arbiter.
func (db *ReviewDB) Create(ctx context.Context, review *model.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO reviews (user_id, item_id, content, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.UserID,
		review.ItemID,
		review.Content,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("You have already reviewed this item")
		}
		return fmt.Errorf("sqlite: creating review (user=%d item=%d): %w",
			review.UserID, review.ItemID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new review id: %w", err)
	}
	review.ID = id

	return nil
}

// GetByID retrieves a single review scoped to an item, decorated with the
// reviewer's username. Filtering on (id, item_id) means a review id under
// the wrong item reads as NotFound.
func (db *ReviewDB) GetByID(ctx context.Context, itemID, reviewID int64) (*model.Review, error) {
	var r model.Review

	err := db.conn.QueryRowContext(ctx,
		`SELECT r.id, r.user_id, r.item_id, r.content, r.rating,
		        r.created_at, r.updated_at, u.username
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.id = ? AND r.item_id = ?`,
		reviewID, itemID,
	).Scan(
		&r.ID, &r.UserID, &r.ItemID, &r.Content, &r.Rating,
		&r.CreatedAt, &r.UpdatedAt, &r.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, fmt.Errorf("sqlite: getting review %d: %w", reviewID, err)
	}

	return &r, nil
}

// ExistsForUserAndItem reports whether the user has already reviewed the
// item. This is the friendly pre-check; the UNIQUE constraint in Create is
// the backstop.
func (db *ReviewDB) ExistsForUserAndItem(ctx context.Context, userID, itemID int64) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking review existence (user=%d item=%d): %w",
			userID, itemID, err)
	}
	return count > 0, nil
}

// ListForItem retrieves all reviews for an item, newest first, each
// decorated with the reviewer's username.
func (db *ReviewDB) ListForItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.item_id, r.content, r.rating,
		        r.created_at, r.updated_at, u.username
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.item_id = ?
		 ORDER BY r.created_at DESC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews for item %d: %w", itemID, err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.ItemID, &r.Content, &r.Rating,
			&r.CreatedAt, &r.UpdatedAt, &r.Username,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return reviews, nil
}

// ListForUser retrieves all of a user's reviews, newest first, each
// decorated with the reviewed item's name and category.
func (db *ReviewDB) ListForUser(ctx context.Context, userID int64) ([]model.Review, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.item_id, r.content, r.rating,
		        r.created_at, r.updated_at, i.name, i.category
		 FROM reviews r
		 JOIN items i ON r.item_id = i.id
		 WHERE r.user_id = ?
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews for user %d: %w", userID, err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.ItemID, &r.Content, &r.Rating,
			&r.CreatedAt, &r.UpdatedAt, &r.ItemName, &r.ItemCategory,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return reviews, nil
}

// Update modifies a review's content and rating.
//
// The predicate includes BOTH the review id and the owner id. By the time
// we get here the path-level guard has already matched the caller against
// the path's user segment, so zero affected rows specifically means the
// review does not exist (or is not theirs) → NotFound.
func (db *ReviewDB) Update(ctx context.Context, review *model.Review) error {
	review.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE reviews
		 SET content = ?, rating = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		review.Content,
		review.Rating,
		review.UpdatedAt,
		review.ID,
		review.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating review %d: %w", review.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Review not found or not owned by user")
	}

	// Fill the fields fixed at creation so the caller can return the full
	// updated record without a second round trip through GetByID.
	err = db.conn.QueryRowContext(ctx,
		`SELECT item_id, created_at FROM reviews WHERE id = ?`, review.ID,
	).Scan(&review.ItemID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: reading back review %d: %w", review.ID, err)
	}

	return nil
}

// Delete removes a review, again filtering on (id, owner id). The
// ON DELETE CASCADE on comments.review_id removes the review's comments as
// part of the same statement — no orphaned comment rows survive.
func (db *ReviewDB) Delete(ctx context.Context, reviewID, ownerID int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ? AND user_id = ?`,
		reviewID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting review %d: %w", reviewID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Review not found or not owned by user")
	}

	return nil
}

// AggregateForItem computes the item's mean rating and review count from
// the current review rows. Never persisted, always recomputed. An item
// with no reviews reports {0, 0}: AVG over zero rows is NULL, which
// COALESCE folds to 0 so the Scan never sees a null.
func (db *ReviewDB) AggregateForItem(ctx context.Context, itemID int64) (model.ItemRating, error) {
	var rating model.ItemRating

	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*)
		 FROM reviews WHERE item_id = ?`,
		itemID,
	).Scan(&rating.AverageRating, &rating.ReviewCount)
	if err != nil {
		return model.ItemRating{}, fmt.Errorf("sqlite: aggregating ratings for item %d: %w", itemID, err)
	}

	return rating, nil
}

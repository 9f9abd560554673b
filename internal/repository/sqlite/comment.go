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

// CommentDB implements repository.CommentRepository; obtain one via
// DB.Comments().
type CommentDB struct {
	conn *sql.DB
}

var _ repository.CommentRepository = (*CommentDB)(nil)

// Create inserts a new comment on a review.
//
// No uniqueness constraint applies — a user may comment on the same review
// any number of times. The service has already confirmed the parent review
// exists; the foreign key on review_id is the backstop if it vanished in
// between.
func (db *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (user_id, review_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.UserID,
		comment.ReviewID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment (user=%d review=%d): %w",
			comment.UserID, comment.ReviewID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new comment id: %w", err)
	}
	comment.ID = id

	return nil
}

// ListForReview retrieves a review's comments, oldest first, each decorated
// with the commenter's username.
func (db *CommentDB) ListForReview(ctx context.Context, reviewID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.user_id, c.review_id, c.content,
		        c.created_at, c.updated_at, u.username
		 FROM comments c
		 JOIN users u ON c.user_id = u.id
		 WHERE c.review_id = ?
		 ORDER BY c.created_at ASC`,
		reviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for review %d: %w", reviewID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.ReviewID, &c.Content,
			&c.CreatedAt, &c.UpdatedAt, &c.Username,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// ListForUser retrieves all of a user's comments, newest first,
// each decorated with the parent review's content and the reviewed item.
func (db *CommentDB) ListForUser(ctx context.Context, userID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.user_id, c.review_id, c.content,
		        c.created_at, c.updated_at, r.content, i.id, i.name
		 FROM comments c
		 JOIN reviews r ON c.review_id = r.id
		 JOIN items i ON r.item_id = i.id
		 WHERE c.user_id = ?
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for user %d: %w", userID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.ReviewID, &c.Content,
			&c.CreatedAt, &c.UpdatedAt, &c.ReviewContent, &c.ItemID, &c.ItemName,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// Update modifies a comment's content, with the same owner-filtered
// predicate as reviews: zero affected rows → NotFound.
func (db *CommentDB) Update(ctx context.Context, comment *model.Comment) error {
	comment.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE comments
		 SET content = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		comment.Content,
		comment.UpdatedAt,
		comment.ID,
		comment.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating comment %d: %w", comment.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Comment not found or not owned by user")
	}

	// Fill the creation-time fields so the caller can return the full
	// updated record.
	err = db.conn.QueryRowContext(ctx,
		`SELECT review_id, created_at FROM comments WHERE id = ?`, comment.ID,
	).Scan(&comment.ReviewID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: reading back comment %d: %w", comment.ID, err)
	}

	return nil
}

// Delete removes a comment, filtering on (id, owner id).
func (db *CommentDB) Delete(ctx context.Context, commentID, ownerID int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND user_id = ?`,
		commentID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %d: %w", commentID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Comment not found or not owned by user")
	}

	return nil
}

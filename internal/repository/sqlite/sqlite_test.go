package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sakif/review-hub/internal/model"
)

// newTestDB opens a fresh database in a per-test temp directory and runs
// the migrations. A file-backed database rather than ":memory:" because
// database/sql may open more than one connection, and each connection to
// ":memory:" would see its own empty database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedUser inserts a user and returns it with its assigned id.
func seedUser(t *testing.T, db *DB, username, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$fakehashforseedingonly00000000000000000000000000000000",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return user
}

// seedItem inserts an item and returns it with its assigned id.
func seedItem(t *testing.T, db *DB, name, category string) *model.Item {
	t.Helper()

	item := &model.Item{
		Name:        name,
		Description: "seeded for test",
		Category:    category,
	}
	if err := db.Items().Create(context.Background(), item); err != nil {
		t.Fatalf("failed to seed item %q: %v", name, err)
	}
	return item
}

// seedReview inserts a review and returns it with its assigned id.
func seedReview(t *testing.T, db *DB, userID, itemID int64, content string, rating int) *model.Review {
	t.Helper()

	review := &model.Review{
		UserID:  userID,
		ItemID:  itemID,
		Content: content,
		Rating:  rating,
	}
	if err := db.Reviews().Create(context.Background(), review); err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	return review
}

// seedComment inserts a comment and returns it with its assigned id.
func seedComment(t *testing.T, db *DB, userID, reviewID int64, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:   userID,
		ReviewID: reviewID,
		Content:  content,
	}
	if err := db.Comments().Create(context.Background(), comment); err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	return comment
}

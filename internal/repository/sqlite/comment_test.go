package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
)

// ====== CREATE TESTS ======

func TestCommentCreate(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)

	comment := &model.Comment{
		UserID:   bob.ID,
		ReviewID: review.ID,
		Content:  "Which grinder do you pair it with?",
	}
	if err := db.Comments().Create(context.Background(), comment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if comment.ID == 0 {
		t.Error("Create did not assign an id")
	}
}

// No uniqueness rule for comments: the same user may comment on the same
// review repeatedly.
func TestCommentCreateRepeatedByOneUser(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)

	seedComment(t, db, alice.ID, review.ID, "First comment")
	seedComment(t, db, alice.ID, review.ID, "Second comment")

	comments, err := db.Comments().ListForReview(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("ListForReview failed: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
}

// ====== LIST TESTS ======

func TestCommentListForReview(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)
	seedComment(t, db, bob.ID, review.ID, "Agreed!")

	comments, err := db.Comments().ListForReview(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("ListForReview failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Username != "bob" {
		t.Errorf("Username = %q, want the commenter's username", comments[0].Username)
	}
}

func TestCommentListForUser(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great machine for the price", 4)
	seedComment(t, db, bob.ID, review.ID, "Agreed!")

	comments, err := db.Comments().ListForUser(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	c := comments[0]
	if c.ReviewContent != "Great machine for the price" {
		t.Errorf("ReviewContent = %q, want the parent review's content", c.ReviewContent)
	}
	if c.ItemID != item.ID || c.ItemName != "Espresso Machine" {
		t.Errorf("comment not decorated with the reviewed item: %+v", c)
	}
}

func TestCommentListEmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)

	comments, err := db.Comments().ListForReview(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("ListForReview failed: %v", err)
	}
	if comments == nil {
		t.Error("ListForReview returned nil, want an empty slice")
	}
}

// ====== UPDATE TESTS ======

func TestCommentUpdate(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)
	seeded := seedComment(t, db, alice.ID, review.ID, "First draft")

	updated := &model.Comment{
		ID:      seeded.ID,
		UserID:  alice.ID,
		Content: "Edited comment",
	}
	if err := db.Comments().Update(context.Background(), updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ReviewID != review.ID {
		t.Errorf("ReviewID = %d, want %d", updated.ReviewID, review.ID)
	}

	comments, err := db.Comments().ListForReview(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("ListForReview failed: %v", err)
	}
	if comments[0].Content != "Edited comment" {
		t.Errorf("update not persisted: %q", comments[0].Content)
	}
}

func TestCommentUpdateWrongOwner(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)
	seeded := seedComment(t, db, alice.ID, review.ID, "Original")

	err := db.Comments().Update(context.Background(), &model.Comment{
		ID:      seeded.ID,
		UserID:  bob.ID,
		Content: "hijacked",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// ====== DELETE TESTS ======

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)
	seeded := seedComment(t, db, alice.ID, review.ID, "Delete me")

	if err := db.Comments().Delete(context.Background(), seeded.ID, alice.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	comments, err := db.Comments().ListForReview(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("ListForReview failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments after delete, want 0", len(comments))
	}
}

func TestCommentDeleteWrongOwner(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	item := seedItem(t, db, "Espresso Machine", "kitchen")
	review := seedReview(t, db, alice.ID, item.ID, "Great", 4)
	seeded := seedComment(t, db, alice.ID, review.ID, "Keep me")

	err := db.Comments().Delete(context.Background(), seeded.ID, bob.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

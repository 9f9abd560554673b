package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
)

type commentTestEnv struct {
	svc    *CommentService
	item   *model.Item
	review *model.Review
}

// newCommentTestEnv seeds an item with one of alice's reviews so comment
// tests have a parent to attach to.
func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()

	reviews := newFakeReviewRepo()
	comments := newFakeCommentRepo()
	items := newFakeItemRepo()

	item := &model.Item{Name: "Espresso Machine", Category: "kitchen"}
	if err := items.Create(context.Background(), item); err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	review := &model.Review{UserID: alice.ID, ItemID: item.ID, Content: "Great", Rating: 4}
	if err := reviews.Create(context.Background(), review); err != nil {
		t.Fatalf("seeding review: %v", err)
	}

	return &commentTestEnv{
		svc:    NewCommentService(comments, reviews, discardLogger()),
		item:   item,
		review: review,
	}
}

// ====== CREATE TESTS ======

func TestCommentCreate(t *testing.T) {
	env := newCommentTestEnv(t)

	comment, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Which grinder?")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if comment.ID == 0 {
		t.Error("created comment has no id")
	}
	if comment.UserID != bob.ID {
		t.Errorf("UserID = %d, want the caller's id %d", comment.UserID, bob.ID)
	}
	if comment.Username != "bob" {
		t.Errorf("Username = %q, want the caller's username", comment.Username)
	}
}

func TestCommentCreateEmptyContent(t *testing.T) {
	env := newCommentTestEnv(t)

	for _, content := range []string{"", "   "} {
		_, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, content)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("content %q: error = %v, want ErrValidation", content, err)
		}
	}
}

// A review id under the wrong item must not accept comments.
func TestCommentCreateReviewUnderWrongItem(t *testing.T) {
	env := newCommentTestEnv(t)

	_, err := env.svc.Create(context.Background(), bob, 999, env.review.ID, "Lost comment")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "Review not found for this item" {
		t.Errorf("message = %q, want %q", appErr.Message, "Review not found for this item")
	}
}

// ====== LIST TESTS ======

func TestCommentListMine(t *testing.T) {
	env := newCommentTestEnv(t)

	if _, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Bob's comment"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := env.svc.Create(context.Background(), alice, env.item.ID, env.review.ID, "Alice's reply"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := env.svc.ListMine(context.Background(), bob)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("got %d comments, want only the caller's 1", len(mine))
	}
	if mine[0].Content != "Bob's comment" {
		t.Errorf("content = %q, want %q", mine[0].Content, "Bob's comment")
	}
}

// ====== UPDATE TESTS ======

func TestCommentUpdate(t *testing.T) {
	env := newCommentTestEnv(t)

	created, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "First draft")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := env.svc.Update(context.Background(), bob, bob.ID, created.ID, "Edited")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Content != "Edited" {
		t.Errorf("content = %q, want %q", updated.Content, "Edited")
	}
}

func TestCommentUpdateForbiddenForOtherUser(t *testing.T) {
	env := newCommentTestEnv(t)

	created, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Bob's comment")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = env.svc.Update(context.Background(), alice, bob.ID, created.ID, "hijacked")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestCommentUpdateEmptyContent(t *testing.T) {
	env := newCommentTestEnv(t)

	created, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Fine")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := env.svc.Update(context.Background(), bob, bob.ID, created.ID, ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// ====== DELETE TESTS ======

func TestCommentDelete(t *testing.T) {
	env := newCommentTestEnv(t)

	created, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Delete me")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.svc.Delete(context.Background(), bob, bob.ID, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	mine, err := env.svc.ListMine(context.Background(), bob)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("got %d comments after delete, want 0", len(mine))
	}
}

func TestCommentDeleteForbiddenForOtherUser(t *testing.T) {
	env := newCommentTestEnv(t)

	created, err := env.svc.Create(context.Background(), bob, env.item.ID, env.review.ID, "Bob's comment")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.svc.Delete(context.Background(), alice, bob.ID, created.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

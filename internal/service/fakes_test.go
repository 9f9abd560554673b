package service

// In-memory fakes for the repository interfaces. Each fake keeps its rows
// in a map and reproduces the contract the real store honors: classified
// errors for missing rows, Conflict for constraint violations, and the
// owner-filtered predicate on Update/Delete.

import (
	"context"
	"sort"
	"time"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// ====== USER FAKE ======

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Conflict("Username or email already exists")
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ====== ITEM FAKE ======

type fakeItemRepo struct {
	items  map[int64]*model.Item
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*model.Item), nextID: 1}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *model.Item) error {
	item.ID = f.nextID
	f.nextID++
	item.CreatedAt = time.Now()
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperror.NotFound("Item not found")
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	items := []model.Item{}
	for _, item := range f.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// ====== REVIEW FAKE ======

type fakeReviewRepo struct {
	reviews map[int64]*model.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*model.Review), nextID: 1}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	for _, r := range f.reviews {
		if r.UserID == review.UserID && r.ItemID == review.ItemID {
			return apperror.Conflict("You have already reviewed this item")
		}
	}
	review.ID = f.nextID
	f.nextID++
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, itemID, reviewID int64) (*model.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.ItemID != itemID {
		return nil, apperror.NotFound("Review not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) ExistsForUserAndItem(ctx context.Context, userID, itemID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) ListForItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	reviews := []model.Review{}
	for _, r := range f.reviews {
		if r.ItemID == itemID {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) ListForUser(ctx context.Context, userID int64) ([]model.Review, error) {
	reviews := []model.Review{}
	for _, r := range f.reviews {
		if r.UserID == userID {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *model.Review) error {
	r, ok := f.reviews[review.ID]
	if !ok || r.UserID != review.UserID {
		return apperror.NotFound("Review not found or not owned by user")
	}
	r.Content = review.Content
	r.Rating = review.Rating
	r.UpdatedAt = time.Now()
	review.ItemID = r.ItemID
	review.CreatedAt = r.CreatedAt
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, reviewID, ownerID int64) error {
	r, ok := f.reviews[reviewID]
	if !ok || r.UserID != ownerID {
		return apperror.NotFound("Review not found or not owned by user")
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeReviewRepo) AggregateForItem(ctx context.Context, itemID int64) (model.ItemRating, error) {
	var sum, count int
	for _, r := range f.reviews {
		if r.ItemID == itemID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return model.ItemRating{}, nil
	}
	return model.ItemRating{
		AverageRating: float64(sum) / float64(count),
		ReviewCount:   count,
	}, nil
}

// ====== COMMENT FAKE ======

type fakeCommentRepo struct {
	comments map[int64]*model.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*model.Comment), nextID: 1}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) ListForReview(ctx context.Context, reviewID int64) ([]model.Comment, error) {
	comments := []model.Comment{}
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *fakeCommentRepo) ListForUser(ctx context.Context, userID int64) ([]model.Comment, error) {
	comments := []model.Comment{}
	for _, c := range f.comments {
		if c.UserID == userID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, comment *model.Comment) error {
	c, ok := f.comments[comment.ID]
	if !ok || c.UserID != comment.UserID {
		return apperror.NotFound("Comment not found or not owned by user")
	}
	c.Content = comment.Content
	c.UpdatedAt = time.Now()
	comment.ReviewID = c.ReviewID
	comment.CreatedAt = c.CreatedAt
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, commentID, ownerID int64) error {
	c, ok := f.comments[commentID]
	if !ok || c.UserID != ownerID {
		return apperror.NotFound("Comment not found or not owned by user")
	}
	delete(f.comments, commentID)
	return nil
}

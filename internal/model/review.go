package model

import "time"

// Rating bounds for a review. Values outside this range are rejected before
// any database access.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating and write-up of an item.
//
// OWNERSHIP:
// UserID and ItemID are fixed at creation and never reassigned. Only the
// creating user may update or delete the review, and a user may review a
// given item at most once — the database enforces this with a
// UNIQUE(user_id, item_id) constraint.
//
// Username, ItemName and ItemCategory are join-only decorations: populated
// by queries that join users/items, empty otherwise, and omitted from JSON
// when empty.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string    `json:"username,omitempty"`
	ItemName     string    `json:"item_name,omitempty"`
	ItemCategory string    `json:"item_category,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
}

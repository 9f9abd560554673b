package model

import "time"

// Comment is a user's remark on a review.
//
// Unlike reviews there is no uniqueness constraint — a user may comment on
// the same review any number of times. A comment's lifecycle is bound to
// its parent review: deleting the review cascades to its comments.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ReviewID  int64     `json:"review_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Join-only decorations, empty unless the query populated them.
	Username      string `json:"username,omitempty"`
	ReviewContent string `json:"review_content,omitempty"`
	ItemID        int64  `json:"item_id,omitempty"`
	ItemName      string `json:"item_name,omitempty"`
}

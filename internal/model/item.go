package model

import "time"

// Item is something users can review: a restaurant, a book, a gadget.
//
// Items are seeded into the database out of band and are read-only from the
// API's perspective — there is no HTTP route that creates or mutates one.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRating is the derived rating summary for an item. It is never
// persisted — always recomputed from the current review rows. An item with
// no reviews reports {0, 0}, not an error.
type ItemRating struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

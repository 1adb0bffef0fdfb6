package model

import "time"

// Rating bounds for a review. The form renders a 1–5 selector, but the
// service validates server-side as well — never trust the client.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single user review of a campground.
//
// Note there is no CampgroundID field here. The relationship is held on the
// campground's side (the campground_reviews membership table), mirroring a
// document model where the campground carries the list of review references.
type Review struct {
	ID        string    `json:"id"        db:"id"`
	Body      string    `json:"body"      db:"body"`
	Rating    int       `json:"rating"    db:"rating"` // 1..5 inclusive
	AuthorID  string    `json:"authorId"  db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewWithAuthor pairs a review with its resolved author for rendering.
type ReviewWithAuthor struct {
	Review
	Author User
}

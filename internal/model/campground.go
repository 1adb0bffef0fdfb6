// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Campground represents a single listed campground.
//
// AuthorID references the user who created the campground. It is set exactly
// once, at creation time, and is never touched by updates — ownership cannot
// be transferred through the web UI.
//
// Reviews are NOT stored on this struct. The campground "owns" a set of review
// references through the campground_reviews membership table; when a page
// needs the expanded view, the repository assembles a CampgroundDetail.
type Campground struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Location    string    `json:"location"    db:"location"`
	Image       string    `json:"image"       db:"image"`       // URL of the cover photo
	Price       float64   `json:"price"       db:"price"`       // per night, never negative
	Description string    `json:"description" db:"description"`
	AuthorID    string    `json:"authorId"    db:"author_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CampgroundDetail is the fully expanded view of a campground, used by the
// detail page: the author resolved to a full user record and every review
// paired with its own author.
type CampgroundDetail struct {
	Campground
	Author  User
	Reviews []ReviewWithAuthor
}

// Package repository declares the persistence interfaces.
//
// Services depend on these interfaces, not on the sqlite package — in tests
// we swap in in-memory mocks, and the storage backend could change without
// touching any business logic.
package repository

import (
	"context"

	"github.com/sakif/gocamp/internal/model"
)

// CampgroundRepository persists campgrounds and the campground→review
// membership set.
type CampgroundRepository interface {
	Create(ctx context.Context, campground *model.Campground) error
	GetByID(ctx context.Context, id string) (*model.Campground, error)
	// GetDetail expands the campground's author and its reviews, each review
	// paired with its own author.
	GetDetail(ctx context.Context, id string) (*model.CampgroundDetail, error)
	List(ctx context.Context) ([]model.Campground, error)
	// Update writes title, location, image, price and description. It never
	// touches author_id — ownership is fixed at creation.
	Update(ctx context.Context, campground *model.Campground) error
	// Delete removes the campground and its review membership rows. The
	// review records themselves are left in place (no cascade).
	Delete(ctx context.Context, id string) error

	// AttachReview adds a review reference to the campground's set.
	AttachReview(ctx context.Context, campgroundID, reviewID string) error
	// DetachReview removes a review reference from the campground's set.
	DetachReview(ctx context.Context, campgroundID, reviewID string) error
}

// ReviewRepository persists standalone review records.
//
// Method names carry the entity because a single storage type implements all
// three repository interfaces — the campground methods own the plain names.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewByID(ctx context.Context, id string) (*model.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

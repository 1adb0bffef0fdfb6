package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// Compile-time check that *DB implements the interface. If a method goes
// missing the build breaks here, not at some distant call site.
var _ repository.CampgroundRepository = (*DB)(nil)

// Create inserts a new campground. The caller's struct gets the generated ID
// and timestamps filled in — that's why it takes a pointer.
func (db *DB) Create(ctx context.Context, campground *model.Campground) error {
	campground.ID = xid.New().String()

	now := time.Now()
	campground.CreatedAt = now
	campground.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO campgrounds (id, title, location, image, price, description, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		campground.ID,
		campground.Title,
		campground.Location,
		campground.Image,
		campground.Price,
		campground.Description,
		campground.AuthorID,
		campground.CreatedAt,
		campground.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating campground: %w", err)
	}

	return nil
}

// GetByID retrieves a single campground without any expansion. Used by the
// ownership gate and the edit form.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Campground, error) {
	var c model.Campground

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, location, image, price, description, author_id, created_at, updated_at
		 FROM campgrounds
		 WHERE id = ?`,
		id,
	).Scan(
		&c.ID, &c.Title, &c.Location, &c.Image, &c.Price,
		&c.Description, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel — database/sql doesn't wrap it, so ==
		// is fine. Translate it to the domain's not-found error.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("campground", id)
		}
		return nil, fmt.Errorf("sqlite: getting campground %s: %w", id, err)
	}

	return &c, nil
}

// GetDetail retrieves a campground with its author and reviews expanded.
//
// Three queries: the campground row, its author, then one joined query for
// the reviews with their authors. The membership table drives the review
// lookup — a review row that has been detached never shows up here, even if
// it still exists as an orphan.
func (db *DB) GetDetail(ctx context.Context, id string) (*model.CampgroundDetail, error) {
	campground, err := db.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.CampgroundDetail{Campground: *campground}

	author, err := db.GetUserByID(ctx, campground.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: resolving campground author: %w", err)
	}
	detail.Author = *author

	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.body, r.rating, r.author_id, r.created_at,
		        u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
		 FROM campground_reviews cr
		 JOIN reviews r ON r.id = cr.review_id
		 JOIN users u ON u.id = r.author_id
		 WHERE cr.campground_id = ?
		 ORDER BY r.created_at DESC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews for campground %s: %w", id, err)
	}
	defer rows.Close()

	detail.Reviews = []model.ReviewWithAuthor{}
	for rows.Next() {
		var rv model.ReviewWithAuthor
		if err := rows.Scan(
			&rv.ID, &rv.Body, &rv.Rating, &rv.AuthorID, &rv.CreatedAt,
			&rv.Author.ID, &rv.Author.Username, &rv.Author.Email,
			&rv.Author.PasswordHash, &rv.Author.CreatedAt, &rv.Author.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		detail.Reviews = append(detail.Reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return detail, nil
}

// List returns all campgrounds, newest first. The index page shows the whole
// catalogue — there is no pagination in the UI.
func (db *DB) List(ctx context.Context) ([]model.Campground, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, location, image, price, description, author_id, created_at, updated_at
		 FROM campgrounds
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing campgrounds: %w", err)
	}
	defer rows.Close()

	campgrounds := []model.Campground{}
	for rows.Next() {
		var c model.Campground
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Location, &c.Image, &c.Price,
			&c.Description, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning campground row: %w", err)
		}
		campgrounds = append(campgrounds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating campgrounds: %w", err)
	}

	return campgrounds, nil
}

// Update writes the mutable fields. author_id and created_at are immutable —
// they are not in the SET list at all, so ownership can never be reassigned
// by this path.
func (db *DB) Update(ctx context.Context, campground *model.Campground) error {
	campground.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE campgrounds
		 SET title = ?, location = ?, image = ?, price = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		campground.Title,
		campground.Location,
		campground.Image,
		campground.Price,
		campground.Description,
		campground.UpdatedAt,
		campground.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating campground %s: %w", campground.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("campground", campground.ID)
	}

	return nil
}

// Delete removes the campground and its review membership rows. Review
// records referenced by those rows are NOT deleted — they stay behind as
// orphans, exactly as the original delete flow leaves them.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM campgrounds WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting campground %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("campground", id)
	}

	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM campground_reviews WHERE campground_id = ?`,
		id,
	); err != nil {
		return fmt.Errorf("sqlite: detaching reviews of campground %s: %w", id, err)
	}

	return nil
}

// AttachReview adds a review reference to the campground's set.
func (db *DB) AttachReview(ctx context.Context, campgroundID, reviewID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO campground_reviews (campground_id, review_id) VALUES (?, ?)`,
		campgroundID, reviewID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: attaching review %s to campground %s: %w", reviewID, campgroundID, err)
	}
	return nil
}

// DetachReview removes a review reference from the campground's set. It is
// one of the two independent statements of a review delete — the review row
// itself is removed by ReviewRepository.Delete in a separate call, with no
// transaction spanning the pair.
func (db *DB) DetachReview(ctx context.Context, campgroundID, reviewID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM campground_reviews WHERE campground_id = ? AND review_id = ?`,
		campgroundID, reviewID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: detaching review %s from campground %s: %w", reviewID, campgroundID, err)
	}
	return nil
}

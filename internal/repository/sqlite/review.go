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

var _ repository.ReviewRepository = (*DB)(nil)

// CreateReview inserts a standalone review record. Attaching it to a
// campground is a separate AttachReview call — the review row itself knows
// nothing about which campground owns it.
func (db *DB) CreateReview(ctx context.Context, review *model.Review) error {
	review.ID = xid.New().String()
	review.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO reviews (id, body, rating, author_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		review.ID,
		review.Body,
		review.Rating,
		review.AuthorID,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating review: %w", err)
	}

	return nil
}

// GetReviewByID retrieves a single review. The ownership gate uses this
// before allowing a delete.
func (db *DB) GetReviewByID(ctx context.Context, id string) (*model.Review, error) {
	var r model.Review

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, body, rating, author_id, created_at
		 FROM reviews
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Body, &r.Rating, &r.AuthorID, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("review", id)
		}
		return nil, fmt.Errorf("sqlite: getting review %s: %w", id, err)
	}

	return &r, nil
}

// DeleteReview removes a review record. Membership rows are handled
// separately by DetachReview.
func (db *DB) DeleteReview(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting review %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("review", id)
	}

	return nil
}

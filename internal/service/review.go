package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// ReviewForm is the raw submitted payload for a new review.
type ReviewForm struct {
	Body   string
	Rating string
}

// ReviewService handles business logic for reviews. It needs both
// repositories: review records live on their own, while membership in a
// campground's review set lives on the campground side.
type ReviewService struct {
	campgrounds repository.CampgroundRepository
	reviews     repository.ReviewRepository
	logger      *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(campgrounds repository.CampgroundRepository, reviews repository.ReviewRepository, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		campgrounds: campgrounds,
		reviews:     reviews,
		logger:      logger,
	}
}

// validateReviewForm checks all review constraints in one pass.
func validateReviewForm(f ReviewForm) (int, []string) {
	var msgs []string

	if strings.TrimSpace(f.Body) == "" {
		msgs = append(msgs, "review body is required")
	}

	rating, err := strconv.Atoi(strings.TrimSpace(f.Rating))
	switch {
	case err != nil:
		msgs = append(msgs, "rating must be a number")
	case rating < model.MinRating || rating > model.MaxRating:
		msgs = append(msgs, fmt.Sprintf("rating must be between %d and %d", model.MinRating, model.MaxRating))
	}

	return rating, msgs
}

// Create validates the form, persists the review, and attaches it to the
// campground's review set.
//
// The record insert and the attach are two separate persistence calls with no
// transaction spanning them — the same pair of writes the original performs.
// A crash between the two leaves a detached review record.
func (s *ReviewService) Create(ctx context.Context, campgroundID string, f ReviewForm, authorID string) (*model.Review, error) {
	// Confirm the campground exists before writing anything.
	if _, err := s.campgrounds.GetByID(ctx, campgroundID); err != nil {
		return nil, err
	}

	rating, msgs := validateReviewForm(f)
	if len(msgs) > 0 {
		return nil, apperror.ValidationFailed(strings.Join(msgs, ","))
	}

	review := &model.Review{
		Body:     strings.TrimSpace(f.Body),
		Rating:   rating,
		AuthorID: authorID,
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		s.logger.Error("failed to create review",
			slog.String("campgroundID", campgroundID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating review: %w", err)
	}

	if err := s.campgrounds.AttachReview(ctx, campgroundID, review.ID); err != nil {
		s.logger.Error("failed to attach review",
			slog.String("campgroundID", campgroundID),
			slog.String("reviewID", review.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("attaching review: %w", err)
	}

	s.logger.Info("review created",
		slog.String("id", review.ID),
		slog.String("campgroundID", campgroundID),
		slog.String("authorID", authorID),
	)

	return review, nil
}

// Get retrieves a review record. The ownership gate uses this before a
// delete.
func (s *ReviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("review ID is required")
	}
	return s.reviews.GetReviewByID(ctx, id)
}

// Delete detaches the review from the campground, then deletes the record.
// Two independent statements, no transaction — concurrent deletes of the
// campground and the review can interleave, and both "succeed".
func (s *ReviewService) Delete(ctx context.Context, campgroundID, reviewID string) error {
	if err := s.campgrounds.DetachReview(ctx, campgroundID, reviewID); err != nil {
		return err
	}

	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info("review deleted",
		slog.String("id", reviewID),
		slog.String("campgroundID", campgroundID),
	)
	return nil
}

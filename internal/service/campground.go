// Package service contains the business logic layer.
//
// Handlers parse HTTP and render pages; services validate and enforce the
// rules; repositories talk to the database. Services receive repository
// interfaces (not the sqlite types), so tests swap in in-memory mocks and no
// business logic ever imports database/sql.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// CampgroundForm is the raw submitted payload for creating or updating a
// campground. Everything arrives as strings from the HTML form; validation
// and parsing happen together in one pass.
type CampgroundForm struct {
	Title       string
	Location    string
	Image       string
	Price       string
	Description string
}

// CampgroundService handles business logic for campgrounds.
type CampgroundService struct {
	repo   repository.CampgroundRepository
	logger *slog.Logger
}

// NewCampgroundService creates a CampgroundService.
func NewCampgroundService(repo repository.CampgroundRepository, logger *slog.Logger) *CampgroundService {
	return &CampgroundService{repo: repo, logger: logger}
}

// validateCampgroundForm checks every declared constraint in a single pass
// and returns the parsed price plus ALL failure messages — no short-circuit,
// so the user sees the complete list at once.
func validateCampgroundForm(f CampgroundForm) (float64, []string) {
	var msgs []string

	if strings.TrimSpace(f.Title) == "" {
		msgs = append(msgs, "title is required")
	}
	if strings.TrimSpace(f.Location) == "" {
		msgs = append(msgs, "location is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		msgs = append(msgs, "description is required")
	}

	if u, err := url.Parse(strings.TrimSpace(f.Image)); err != nil || !u.IsAbs() ||
		(u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		msgs = append(msgs, "image must be a valid http(s) URL")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	switch {
	case err != nil:
		msgs = append(msgs, "price must be a number")
	case price < 0:
		msgs = append(msgs, "price must be 0 or greater")
	}

	return price, msgs
}

// Create validates the form and persists a new campground owned by authorID.
//
// The author is set here, exactly once. Update never touches it — ownership
// is fixed for the lifetime of the record.
func (s *CampgroundService) Create(ctx context.Context, f CampgroundForm, authorID string) (*model.Campground, error) {
	price, msgs := validateCampgroundForm(f)
	if len(msgs) > 0 {
		return nil, apperror.ValidationFailed(strings.Join(msgs, ","))
	}

	campground := &model.Campground{
		Title:       strings.TrimSpace(f.Title),
		Location:    strings.TrimSpace(f.Location),
		Image:       strings.TrimSpace(f.Image),
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		AuthorID:    authorID,
	}

	if err := s.repo.Create(ctx, campground); err != nil {
		s.logger.Error("failed to create campground",
			slog.String("title", campground.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating campground: %w", err)
	}

	s.logger.Info("campground created",
		slog.String("id", campground.ID),
		slog.String("title", campground.Title),
		slog.String("authorID", authorID),
	)

	return campground, nil
}

// Get retrieves a campground without expansion.
func (s *CampgroundService) Get(ctx context.Context, id string) (*model.Campground, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("campground ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// GetDetail retrieves a campground with author and reviews expanded, for the
// detail page.
func (s *CampgroundService) GetDetail(ctx context.Context, id string) (*model.CampgroundDetail, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("campground ID is required")
	}
	return s.repo.GetDetail(ctx, id)
}

// List returns all campgrounds for the index page.
func (s *CampgroundService) List(ctx context.Context) ([]model.Campground, error) {
	campgrounds, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list campgrounds", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing campgrounds: %w", err)
	}
	return campgrounds, nil
}

// Update validates the form and writes the mutable fields of an existing
// campground. The caller (ownership gate) has already confirmed the requester
// owns it.
func (s *CampgroundService) Update(ctx context.Context, id string, f CampgroundForm) (*model.Campground, error) {
	price, msgs := validateCampgroundForm(f)
	if len(msgs) > 0 {
		return nil, apperror.ValidationFailed(strings.Join(msgs, ","))
	}

	campground, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	campground.Title = strings.TrimSpace(f.Title)
	campground.Location = strings.TrimSpace(f.Location)
	campground.Image = strings.TrimSpace(f.Image)
	campground.Price = price
	campground.Description = strings.TrimSpace(f.Description)

	if err := s.repo.Update(ctx, campground); err != nil {
		s.logger.Error("failed to update campground",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating campground: %w", err)
	}

	s.logger.Info("campground updated", slog.String("id", id))

	return campground, nil
}

// Delete removes a campground. Its reviews are detached but NOT deleted —
// the records stay behind as orphans. That mirrors the original delete flow;
// see the sqlite schema notes before "fixing" it.
func (s *CampgroundService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("campground deleted", slog.String("id", id))
	return nil
}

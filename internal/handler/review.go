package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/flash"
	"github.com/sakif/gocamp/internal/service"
)

// ReviewHandler manages the review routes nested under a campground.
type ReviewHandler struct {
	reviews  *service.ReviewService
	renderer *Renderer
	logger   *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, renderer *Renderer, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleCreate appends a review to a campground.
//
// HTTP: POST /campgrounds/{id}/reviews (login required)
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	form := service.ReviewForm{
		Body:   r.PostFormValue("review[body]"),
		Rating: r.PostFormValue("review[rating]"),
	}

	if _, err := h.reviews.Create(r.Context(), campgroundID, form, user.ID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			flash.Error(w, "Campground not found.")
			http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
			return
		}
		h.renderer.RenderError(w, r, err)
		return
	}

	flash.Success(w, "Created new review!")
	http.Redirect(w, r, "/campgrounds/"+campgroundID, http.StatusSeeOther)
}

// HandleDelete removes a review from a campground.
//
// HTTP: DELETE /campgrounds/{id}/reviews/{reviewID} (login + review
// ownership required)
//
// The ownership gate loads the review first: a missing review flashes "not
// found" and redirects, rather than attempting a comparison against a record
// that isn't there. A mismatched author flashes and redirects the same way —
// in both cases the review in storage (if any) and the campground's review
// set are untouched.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("id")
	reviewID := r.PathValue("reviewID")

	review, err := h.reviews.Get(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			flash.Error(w, "Review not found.")
			http.Redirect(w, r, "/campgrounds/"+campgroundID, http.StatusSeeOther)
			return
		}
		h.renderer.RenderError(w, r, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if review.AuthorID != user.ID {
		flash.Error(w, "Please check to see if you own this review")
		http.Redirect(w, r, "/campgrounds/"+campgroundID, http.StatusSeeOther)
		return
	}

	if err := h.reviews.Delete(r.Context(), campgroundID, reviewID); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	flash.Success(w, "Successfully deleted review.")
	http.Redirect(w, r, "/campgrounds/"+campgroundID, http.StatusSeeOther)
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/flash"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/service"
)

// CampgroundHandler manages the campground pages and CRUD routes.
//
// GUARD ORDER on mutating routes is fixed: the login gate runs as route
// middleware (auth.RequireLogin), then the ownership gate runs at the top of
// the handler, then validation happens inside the service call. Authorization
// failures flash and redirect; validation and unexpected failures go to the
// terminal error page.
type CampgroundHandler struct {
	campgrounds *service.CampgroundService
	renderer    *Renderer
	logger      *slog.Logger
}

// NewCampgroundHandler creates a CampgroundHandler.
func NewCampgroundHandler(campgrounds *service.CampgroundService, renderer *Renderer, logger *slog.Logger) *CampgroundHandler {
	return &CampgroundHandler{
		campgrounds: campgrounds,
		renderer:    renderer,
		logger:      logger,
	}
}

// campgroundForm reads the nested campground[...] form fields.
func campgroundForm(r *http.Request) service.CampgroundForm {
	return service.CampgroundForm{
		Title:       r.PostFormValue("campground[title]"),
		Location:    r.PostFormValue("campground[location]"),
		Image:       r.PostFormValue("campground[image]"),
		Price:       r.PostFormValue("campground[price]"),
		Description: r.PostFormValue("campground[description]"),
	}
}

// requireOwner is the ownership gate: load the campground, then compare its
// stored author ID against the session identity.
//
// Absence is checked BEFORE the comparison — a concurrently deleted
// campground flashes "not found" and redirects to the list instead of
// blowing up on a nil record. A mismatch flashes and redirects to the
// campground's own page, the safe fallback. Either way the caller just
// returns when ok is false; the response is already written.
func (h *CampgroundHandler) requireOwner(w http.ResponseWriter, r *http.Request, id string) (*model.Campground, bool) {
	campground, err := h.campgrounds.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			flash.Error(w, "Campground not found.")
			http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
			return nil, false
		}
		h.renderer.RenderError(w, r, err)
		return nil, false
	}

	user, _ := auth.UserFromContext(r.Context())
	if campground.AuthorID != user.ID {
		flash.Error(w, "Please check to see if you own this campground")
		http.Redirect(w, r, "/campgrounds/"+id, http.StatusSeeOther)
		return nil, false
	}

	return campground, true
}

// HandleIndex lists all campgrounds.
//
// HTTP: GET /campgrounds
func (h *CampgroundHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	campgrounds, err := h.campgrounds.List(r.Context())
	if err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "campgrounds/index", "All Campgrounds", campgrounds)
}

// HandleNewForm renders the creation form.
//
// HTTP: GET /campgrounds/new (login required)
func (h *CampgroundHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "campgrounds/new", "New Campground", nil)
}

// HandleCreate creates a campground owned by the current user.
//
// HTTP: POST /campgrounds (login required)
func (h *CampgroundHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	campground, err := h.campgrounds.Create(r.Context(), campgroundForm(r), user.ID)
	if err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	flash.Success(w, "Successfully made a new campground!")
	http.Redirect(w, r, "/campgrounds/"+campground.ID, http.StatusSeeOther)
}

// HandleShow renders the detail page with the author and reviews expanded.
// A missing campground is one of the two read routes that check not-found
// explicitly: it flashes and redirects to the list.
//
// HTTP: GET /campgrounds/{id}
func (h *CampgroundHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	detail, err := h.campgrounds.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			flash.Error(w, "Campground not found.")
			http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
			return
		}
		h.renderer.RenderError(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "campgrounds/show", detail.Title, detail)
}

// HandleEditForm renders the edit form.
//
// HTTP: GET /campgrounds/{id}/edit (login + ownership required)
func (h *CampgroundHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	campground, ok := h.requireOwner(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "campgrounds/edit", "Edit Campground", campground)
}

// HandleUpdate writes the mutable fields of a campground.
//
// HTTP: PUT /campgrounds/{id} (login + ownership required; arrives as a POST
// with a _method override)
func (h *CampgroundHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, ok := h.requireOwner(w, r, id); !ok {
		return
	}

	if _, err := h.campgrounds.Update(r.Context(), id, campgroundForm(r)); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	flash.Success(w, "Successfully updated campground!")
	http.Redirect(w, r, "/campgrounds/"+id, http.StatusSeeOther)
}

// HandleDelete deletes a campground. Its reviews are left behind as orphans
// on purpose — see the repository notes.
//
// HTTP: DELETE /campgrounds/{id} (login + ownership required)
func (h *CampgroundHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, ok := h.requireOwner(w, r, id); !ok {
		return
	}

	if err := h.campgrounds.Delete(r.Context(), id); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	flash.Success(w, "Successfully deleted campground.")
	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}

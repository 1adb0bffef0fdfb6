package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/flash"
	"github.com/sakif/gocamp/internal/service"
)

// UserHandler manages registration, login and logout.
//
// Credential failures here never reach the error page: they flash a message
// and redirect back to the form, keeping the user in the flow.
type UserHandler struct {
	auth     *service.AuthService
	renderer *Renderer
	logger   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(authSvc *service.AuthService, renderer *Renderer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		auth:     authSvc,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleRegisterForm renders the registration form.
//
// HTTP: GET /register
func (h *UserHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "users/register", "Register", nil)
}

// HandleRegister creates an account and logs it straight in.
//
// HTTP: POST /register
//
// Any failure — missing fields, taken username — flashes the message and
// redirects back to the form rather than dead-ending on an error page.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	result, err := h.auth.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		flash.Error(w, err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	auth.SetSessionCookie(w, result.Token)
	flash.Success(w, "Welcome to GoCamp!")
	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}

// HandleLoginForm renders the login form.
//
// HTTP: GET /login
func (h *UserHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "users/login", "Login", nil)
}

// HandleLogin verifies the credentials and starts a session.
//
// HTTP: POST /login
//
// On success the user is sent back to wherever the login gate interrupted
// them (the return-to cookie), or to the campground list.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	result, err := h.auth.Login(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
	)
	if err != nil {
		flash.Error(w, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	auth.SetSessionCookie(w, result.Token)
	flash.Success(w, "Welcome back!")

	redirectURL := auth.PopReturnTo(w, r)
	if redirectURL == "" {
		redirectURL = "/campgrounds"
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: GET /logout
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	flash.Success(w, "Goodbye!")
	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}

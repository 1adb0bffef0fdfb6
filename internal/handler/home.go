package handler

import "net/http"

// HomeHandler serves the landing page.
type HomeHandler struct {
	renderer *Renderer
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(renderer *Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// HandleHome renders the home page.
//
// HTTP: GET /
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "home", "GoCamp", nil)
}

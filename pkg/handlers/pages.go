package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ziggoon/tinyDEM/pkg/middleware"
)

// Renderer is what handlers need from the template layer.
type Renderer interface {
	HTML(w http.ResponseWriter, status int, name string, data any) error
}

// Fixed view models, one per page. The auth core hands data to the
// renderer, never markup.
type HomeView struct {
	Visitor string
}

type DashboardView struct {
	Username string
	IsAdmin  bool
}

type ChartsView struct {
	Username string
}

type FormsView struct {
	Username string
}

type TablesView struct {
	Username string
}

type ErrorView struct {
	Status  int
	Message string
}

type PageHandler struct {
	Render Renderer
	Logger *slog.Logger
}

func NewPageHandler(render Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{Render: render, Logger: logger}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.html(w, http.StatusOK, "home.html", HomeView{Visitor: "anon"})
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.html(w, http.StatusOK, "dashboard.html", DashboardView{Username: id.Username, IsAdmin: id.IsAdmin})
}

func (h *PageHandler) Charts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.html(w, http.StatusOK, "charts.html", ChartsView{Username: id.Username})
}

func (h *PageHandler) Forms(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.html(w, http.StatusOK, "forms.html", FormsView{Username: id.Username})
}

func (h *PageHandler) Tables(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.html(w, http.StatusOK, "tables.html", TablesView{Username: id.Username})
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.html(w, http.StatusNotFound, "error.html", ErrorView{Status: http.StatusNotFound, Message: "Page not found"})
}

// identity fetches what the access guard resolved. Its absence on a
// protected route is a wiring bug, not a user error.
func (h *PageHandler) identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.Logger.Error("protected handler reached without identity", "path", r.URL.Path)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
	return id, ok
}

func (h *PageHandler) html(w http.ResponseWriter, status int, name string, data any) {
	if err := h.Render.HTML(w, status, name, data); err != nil {
		h.Logger.Error("render", "template", name, "error", err)
	}
}

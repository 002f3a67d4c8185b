package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/angeloszaimis/simple-web-app/internal/appinfo"
)

const (
	WelcomeMessage = "Welcome to Simple Spring Boot Web App!"
	DefaultName    = "World"

	IndexTemplate = "index"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// HomeHandler serves the welcome page and the public API. It holds no
// per-request state and is safe for concurrent use.
type HomeHandler struct {
	logger   *slog.Logger
	renderer Renderer
}

func NewHomeHandler(logger *slog.Logger, renderer Renderer) *HomeHandler {
	return &HomeHandler{
		logger:   logger,
		renderer: renderer,
	}
}

// Greeting formats the greeting for name. The name is used verbatim.
func Greeting(name string) string {
	return "Hello, " + name + "!"
}

// Welcome renders the index page.
func (h *HomeHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"message": WelcomeMessage,
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	if err := h.renderer.Render(w, IndexTemplate, data); err != nil {
		h.logger.Error("Failed to render page",
			slog.String("template", IndexTemplate),
			slog.String("path", r.URL.Path),
			slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Hello greets the caller named by the optional name query parameter.
// Repeated parameters are joined with commas.
func (h *HomeHandler) Hello(w http.ResponseWriter, r *http.Request) {
	name := DefaultName
	if values, ok := r.URL.Query()["name"]; ok {
		name = strings.Join(values, ",")
	}

	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.WriteString(w, Greeting(name)); err != nil {
		h.logger.Warn("Failed to write greeting", slog.Any("err", err))
	}
}

// Info returns the application metadata as JSON.
func (h *HomeHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, appinfo.New())
}

// Health reports that the process is up and serving.
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (h *HomeHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode response", slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write response", slog.Any("err", err))
	}
}

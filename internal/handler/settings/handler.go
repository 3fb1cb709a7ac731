package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	settingsModel "github.com/botforge/botforge/internal/model/settings"
	"github.com/botforge/botforge/internal/store"
	"github.com/botforge/botforge/pkg/utils"
)

// Handler serves the settings singleton.
type Handler struct {
	settings *store.Settings
}

// New creates the settings handler.
func New(settings *store.Settings) *Handler {
	return &Handler{settings: settings}
}

// RegisterRoutes mounts the settings routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Put("/settings", h.handlePut)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	value, err := h.settings.Get()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.RespondJSON(w, http.StatusOK, value)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	var value settingsModel.Settings
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if value.Theme == "" {
		utils.RespondError(w, http.StatusBadRequest, "theme is required")
		return
	}

	if err := h.settings.Put(value); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	utils.RespondJSON(w, http.StatusOK, value)
}

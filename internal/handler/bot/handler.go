package bot

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	botModel "github.com/botforge/botforge/internal/model/bot"
	"github.com/botforge/botforge/internal/store"
	"github.com/botforge/botforge/pkg/utils"
)

// Handler serves the bot collection.
type Handler struct {
	bots        *store.Bots
	transcripts *store.Transcripts
	validate    *validator.Validate
}

// New creates the bot handler. The transcript store is needed because
// deleting a bot cascades to its transcript.
func New(bots *store.Bots, transcripts *store.Transcripts) *Handler {
	return &Handler{
		bots:        bots,
		transcripts: transcripts,
		validate:    validator.New(),
	}
}

// RegisterRoutes mounts the bot routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/bots", h.handleList)
	r.Post("/bots", h.handleCreate)
	r.Get("/bots/{botID}", h.handleGet)
	r.Put("/bots/{botID}", h.handleUpdate)
	r.Delete("/bots/{botID}", h.handleDelete)
}

// payload is the client-supplied slice of a bot; ids and timestamps are
// assigned server-side.
type payload struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description" validate:"required"`
	AgeCategory botModel.AgeCategory `json:"ageCategory" validate:"required,oneof=SFW NSFW"`
	ChatTone    botModel.Tone        `json:"chatTone" validate:"required,oneof=Normal Romantic Flirty Spicy"`
	Image       *string              `json:"image"`
}

func (h *Handler) decode(r *http.Request) (botModel.Bot, error) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return botModel.Bot{}, errors.New("invalid request body")
	}
	if err := h.validate.Struct(p); err != nil {
		return botModel.Bot{}, err
	}
	return botModel.Bot{
		Name:        p.Name,
		Description: p.Description,
		AgeCategory: p.AgeCategory,
		ChatTone:    p.ChatTone,
		Image:       p.Image,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	bots, err := h.bots.List()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load bots")
		return
	}
	utils.RespondJSON(w, http.StatusOK, bots)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.bots.Create(b)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save bot")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	b, err := h.bots.Get(chi.URLParam(r, "botID"))
	if errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load bot")
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.bots.Update(chi.URLParam(r, "botID"), b)
	if errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save bot")
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")

	err := h.bots.Delete(botID)
	if errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete bot")
		return
	}

	// Deleting a bot cascades to its transcript.
	if err := h.transcripts.Delete(botID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete transcript")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/botforge/botforge/internal/model/chat"
	"github.com/botforge/botforge/internal/service/ai"
	chatService "github.com/botforge/botforge/internal/service/chat"
	"github.com/botforge/botforge/internal/store"
	"github.com/botforge/botforge/pkg/utils"
)

// Handler serves the chat surface: transcript reads, sends and edits.
type Handler struct {
	chatSvc *chatService.Service
	bots    *store.Bots
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, bots *store.Bots) *Handler {
	return &Handler{chatSvc: chatSvc, bots: bots}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats/{botID}", h.handleOpen)
	r.Post("/chats/{botID}/messages", h.handleSend)
	r.Delete("/chats/{botID}/messages/{index}", h.handleDeleteMessage)
}

// handleOpen returns the transcript, seeding the welcome message on the
// first visit.
func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	b, err := h.bots.Get(chi.URLParam(r, "botID"))
	if errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load bot")
		return
	}

	history, err := h.chatSvc.Open(r.Context(), b)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}
	utils.RespondJSON(w, http.StatusOK, history)
}

// handleSend runs one conversation round trip. Callers must not issue a
// second send for the same bot while one is pending.
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.bots.Get(chi.URLParam(r, "botID"))
	if errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load bot")
		return
	}

	exchange, err := h.chatSvc.Send(r.Context(), b, payload.Text)
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "message text is required")
	case errors.Is(err, chatService.ErrNoCompleter):
		utils.RespondError(w, http.StatusServiceUnavailable, "upstream model not configured")
	case errors.Is(err, ai.ErrCompletion):
		// The user message is already persisted; the client may resend.
		utils.RespondError(w, http.StatusBadGateway, "completion failed, your message was saved")
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "failed to send message")
	default:
		utils.RespondJSON(w, http.StatusOK, exchange)
	}
}

// handleDeleteMessage edits the transcript. The sender query parameter
// names who authored the message at index: deleting a bot message removes
// just that entry, deleting a user message truncates everything from it on.
func (h *Handler) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid message index")
		return
	}

	sender := chatModel.Sender(r.URL.Query().Get("sender"))
	if sender != chatModel.SenderUser && sender != chatModel.SenderBot {
		utils.RespondError(w, http.StatusBadRequest, "sender must be \"user\" or \"bot\"")
		return
	}

	if _, err := h.bots.Get(botID); errors.Is(err, store.ErrBotNotFound) {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load bot")
		return
	}

	edited, err := h.chatSvc.DeleteMessage(r.Context(), botID, index, sender)
	switch {
	case errors.Is(err, chatService.ErrIndexOutOfRange), errors.Is(err, chatService.ErrSenderMismatch):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "failed to edit transcript")
	default:
		utils.RespondJSON(w, http.StatusOK, edited)
	}
}

// Package relay exposes the thin pass-through surface: exchange a system
// prompt and a user message for a completion, without ever handing the
// upstream credential to the caller.
package relay

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/botforge/botforge/internal/model/bot"
	"github.com/botforge/botforge/internal/service/ai"
	"github.com/botforge/botforge/pkg/utils"
)

// formattingInstructions are appended server-side to every relayed system
// prompt so replies render well in the chat surface.
const formattingInstructions = " Format your replies with markdown where it helps: **bold** for emphasis, `code` for technical terms, and fenced code blocks for multi-line code."

const relayTemperature = 0.7

// Handler forwards relay requests to the completion boundary.
type Handler struct {
	completer ai.Completer
	// fallback masks upstream failure with a canned reply and a 200.
	// When false, failure surfaces as a 502.
	fallback bool
}

// New creates the relay handler.
func New(completer ai.Completer, fallback bool) *Handler {
	return &Handler{completer: completer, fallback: fallback}
}

// RegisterRoutes mounts the relay route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/relay", h.handleRelay)
}

func (h *Handler) handleRelay(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SystemPrompt string `json:"systemPrompt"`
		UserMessage  string `json:"userMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SystemPrompt == "" {
		utils.RespondError(w, http.StatusBadRequest, "systemPrompt is required")
		return
	}
	if payload.UserMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, "userMessage is required")
		return
	}

	window := []*schema.Message{
		schema.SystemMessage(payload.SystemPrompt + formattingInstructions),
		schema.UserMessage(payload.UserMessage),
	}

	reply, err := h.completer.Complete(r.Context(), window, relayTemperature)
	if err != nil {
		log.Printf("[relay] completion failed: %v", err)
		if h.fallback {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"reply": ai.FallbackReply(bot.ToneNormal)})
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "upstream completion failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

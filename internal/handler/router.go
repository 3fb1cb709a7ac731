package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	botHandler "github.com/botforge/botforge/internal/handler/bot"
	chatHandler "github.com/botforge/botforge/internal/handler/chat"
	relayHandler "github.com/botforge/botforge/internal/handler/relay"
	settingsHandler "github.com/botforge/botforge/internal/handler/settings"
	middlewarePkg "github.com/botforge/botforge/internal/middleware"
	"github.com/botforge/botforge/internal/service/ai"
	chatService "github.com/botforge/botforge/internal/service/chat"
	"github.com/botforge/botforge/internal/store"
	"github.com/botforge/botforge/pkg/utils"
)

// NewRouter wires HTTP routes to core services. The completer may be nil
// when no upstream credentials are configured; browsing, transcript edits
// and settings still work, while sends and the relay answer 503.
func NewRouter(bots *store.Bots, transcripts *store.Transcripts, settings *store.Settings, chatSvc *chatService.Service, completer ai.Completer, relayFallback bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		botHandler.New(bots, transcripts).RegisterRoutes(api)
		settingsHandler.New(settings).RegisterRoutes(api)
		chatHandler.New(chatSvc, bots).RegisterRoutes(api)

		if completer != nil {
			relayHandler.New(completer, relayFallback).RegisterRoutes(api)
		} else {
			api.Post("/relay", unavailable)
		}
	})

	return r
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	utils.RespondError(w, http.StatusServiceUnavailable, "upstream model not configured")
}

package bot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	botModel "github.com/botforge/botforge/internal/model/bot"
	chatModel "github.com/botforge/botforge/internal/model/chat"
	"github.com/botforge/botforge/internal/storage"
	"github.com/botforge/botforge/internal/store"
)

func setupRouter() (*chi.Mux, *store.Bots, *store.Transcripts) {
	kv := storage.NewMemoryKV()
	bots := store.NewBots(kv)
	transcripts := store.NewTranscripts(kv)
	handler := New(bots, transcripts)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, bots, transcripts
}

func validPayload() map[string]any {
	return map[string]any{
		"name":        "Luna",
		"description": "a moonlit poet",
		"ageCategory": "SFW",
		"chatTone":    "Romantic",
	}
}

func postJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateBot(t *testing.T) {
	r, _, _ := setupRouter()

	resp := postJSON(r, http.MethodPost, "/bots", validPayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created botModel.Bot
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestCreateBotMissingFields(t *testing.T) {
	r, _, _ := setupRouter()

	payload := validPayload()
	delete(payload, "name")

	resp := postJSON(r, http.MethodPost, "/bots", payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateBotInvalidTone(t *testing.T) {
	r, _, _ := setupRouter()

	payload := validPayload()
	payload["chatTone"] = "Grumpy"

	resp := postJSON(r, http.MethodPost, "/bots", payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetBotNotFound(t *testing.T) {
	r, _, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/bots/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUpdateBot(t *testing.T) {
	r, bots, _ := setupRouter()

	created, err := bots.Create(botModel.Bot{Name: "Luna", Description: "d", AgeCategory: botModel.AgeSFW, ChatTone: botModel.ToneNormal})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	payload := validPayload()
	payload["name"] = "Nova"

	resp := postJSON(r, http.MethodPut, "/bots/"+created.ID, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	updated, err := bots.Get(created.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if updated.Name != "Nova" {
		t.Fatalf("expected replaced bot, got %q", updated.Name)
	}
}

func TestDeleteBotCascadesTranscript(t *testing.T) {
	r, bots, transcripts := setupRouter()

	created, err := bots.Create(botModel.Bot{Name: "Luna", Description: "d", AgeCategory: botModel.AgeSFW, ChatTone: botModel.ToneNormal})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if err := transcripts.Append(created.ID, chatModel.New(chatModel.SenderUser, "hi")); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/bots/"+created.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	history, err := transcripts.GetHistory(created.ID)
	if err != nil {
		t.Fatalf("GetHistory err: %v", err)
	}
	if len(history) != 0 {
		t.Fatal("deleting a bot must delete its transcript")
	}
}

package store_test

import (
	"errors"
	"testing"

	"github.com/botforge/botforge/internal/model/bot"
	"github.com/botforge/botforge/internal/storage"
	"github.com/botforge/botforge/internal/store"
)

func newBot(name string) bot.Bot {
	return bot.Bot{
		Name:        name,
		Description: "a test persona",
		AgeCategory: bot.AgeSFW,
		ChatTone:    bot.ToneNormal,
	}
}

func TestBotsCreateAndGet(t *testing.T) {
	bots := store.NewBots(storage.NewMemoryKV())

	created, err := bots.Create(newBot("Luna"))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := bots.Get(created.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Name != "Luna" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
}

func TestBotsGetNotFound(t *testing.T) {
	bots := store.NewBots(storage.NewMemoryKV())

	if _, err := bots.Get("missing"); !errors.Is(err, store.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
}

func TestBotsUpdateReplacesWholeValue(t *testing.T) {
	bots := store.NewBots(storage.NewMemoryKV())

	created, err := bots.Create(newBot("Luna"))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	replacement := newBot("Nova")
	replacement.ChatTone = bot.ToneSpicy
	replacement.AgeCategory = bot.AgeNSFW

	updated, err := bots.Update(created.ID, replacement)
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must preserve the id")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must preserve the creation time")
	}
	if updated.Name != "Nova" || updated.ChatTone != bot.ToneSpicy {
		t.Fatalf("unexpected updated bot: %+v", updated)
	}

	if _, err := bots.Update("missing", replacement); !errors.Is(err, store.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
}

func TestBotsDelete(t *testing.T) {
	bots := store.NewBots(storage.NewMemoryKV())

	created, err := bots.Create(newBot("Luna"))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	if err := bots.Delete(created.ID); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if _, err := bots.Get(created.ID); !errors.Is(err, store.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound after delete, got %v", err)
	}
	if err := bots.Delete(created.ID); !errors.Is(err, store.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound for second delete, got %v", err)
	}
}

func TestBotsListOrder(t *testing.T) {
	bots := store.NewBots(storage.NewMemoryKV())

	for _, name := range []string{"a", "b", "c"} {
		if _, err := bots.Create(newBot(name)); err != nil {
			t.Fatalf("Create err: %v", err)
		}
	}

	list, err := bots.List()
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 bots, got %d", len(list))
	}
	for i, name := range []string{"a", "b", "c"} {
		if list[i].Name != name {
			t.Fatalf("expected creation order, got %q at %d", list[i].Name, i)
		}
	}
}

// Package store persists the bot collection, the per-bot transcripts and
// the settings singleton as whole JSON documents in the durable key-value
// store. Every operation reads the full document, mutates it in memory and
// writes the full document back; at this scale (one user, bounded data) the
// round trip is cheap and keeps the storage boundary a plain key->string
// mapping.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/botforge/botforge/internal/model/bot"
)

const botsKey = "bots"

// ErrBotNotFound reports an unknown bot id.
var ErrBotNotFound = errors.New("bot not found")

// Bots manages the persisted bot collection.
type Bots struct {
	kv KV
}

// KV is the slice of the storage boundary the document stores consume.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// NewBots returns a bot store backed by kv.
func NewBots(kv KV) *Bots {
	return &Bots{kv: kv}
}

func (s *Bots) load() ([]bot.Bot, error) {
	raw, ok, err := s.kv.Get(botsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []bot.Bot{}, nil
	}
	var bots []bot.Bot
	if err := json.Unmarshal([]byte(raw), &bots); err != nil {
		return nil, fmt.Errorf("failed to decode bot collection: %w", err)
	}
	return bots, nil
}

func (s *Bots) save(bots []bot.Bot) error {
	raw, err := json.Marshal(bots)
	if err != nil {
		return fmt.Errorf("failed to encode bot collection: %w", err)
	}
	return s.kv.Set(botsKey, string(raw))
}

// List returns all bots in creation order.
func (s *Bots) List() ([]bot.Bot, error) {
	return s.load()
}

// Get returns the bot with the given id.
func (s *Bots) Get(id string) (bot.Bot, error) {
	bots, err := s.load()
	if err != nil {
		return bot.Bot{}, err
	}
	for _, b := range bots {
		if b.ID == id {
			return b, nil
		}
	}
	return bot.Bot{}, ErrBotNotFound
}

// Create assigns an id and timestamps, persists the bot and returns it.
func (s *Bots) Create(b bot.Bot) (bot.Bot, error) {
	bots, err := s.load()
	if err != nil {
		return bot.Bot{}, err
	}

	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	bots = append(bots, b)
	if err := s.save(bots); err != nil {
		return bot.Bot{}, err
	}
	return b, nil
}

// Update replaces the stored bot with the same id wholesale. The id and
// creation time are preserved; everything else comes from the caller.
func (s *Bots) Update(id string, b bot.Bot) (bot.Bot, error) {
	bots, err := s.load()
	if err != nil {
		return bot.Bot{}, err
	}

	for i := range bots {
		if bots[i].ID != id {
			continue
		}
		b.ID = id
		b.CreatedAt = bots[i].CreatedAt
		b.UpdatedAt = time.Now().UTC()
		bots[i] = b
		if err := s.save(bots); err != nil {
			return bot.Bot{}, err
		}
		return b, nil
	}
	return bot.Bot{}, ErrBotNotFound
}

// Delete removes the bot with the given id. The caller is responsible for
// cascading the transcript delete.
func (s *Bots) Delete(id string) error {
	bots, err := s.load()
	if err != nil {
		return err
	}

	for i := range bots {
		if bots[i].ID != id {
			continue
		}
		bots = append(bots[:i], bots[i+1:]...)
		return s.save(bots)
	}
	return ErrBotNotFound
}

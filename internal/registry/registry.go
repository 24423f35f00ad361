// Package registry remembers which Telegram chats have started the bot, so
// scheduled broadcasts can reach every subscriber, not just the configured
// default chat.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketChats = []byte("chats")

// Chat is one registered subscriber
type Chat struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ChatRegistry persists subscribers in BoltDB, with an in-memory mirror for
// reads. An empty path runs memory-only (no persistence), which tests use.
type ChatRegistry struct {
	db *bolt.DB
	mu sync.RWMutex

	chats map[int64]Chat
}

func NewChatRegistry(path string) (*ChatRegistry, error) {
	r := &ChatRegistry{chats: make(map[int64]Chat)}

	if path == "" {
		return r, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open chat registry db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketChats)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	r.db = db
	if err := r.loadAll(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *ChatRegistry) loadAll() error {
	return r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChats)
		return b.ForEach(func(k, v []byte) error {
			var chat Chat
			if err := json.Unmarshal(v, &chat); err != nil {
				return nil // skip unreadable entries
			}
			r.chats[chat.ID] = chat
			return nil
		})
	})
}

func (r *ChatRegistry) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Register records a chat. Re-registering an already-known chat keeps its
// original registration time.
func (r *ChatRegistry) Register(chatID int64, username string) error {
	r.mu.Lock()
	chat, known := r.chats[chatID]
	if !known {
		chat = Chat{ID: chatID, Username: username, RegisteredAt: time.Now()}
	} else if username != "" {
		chat.Username = username
	}
	r.chats[chatID] = chat
	r.mu.Unlock()

	if r.db == nil {
		return nil
	}

	data, err := json.Marshal(chat)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChats).Put(key(chatID), data)
	})
}

// Remove forgets a chat, e.g. after Telegram reports the bot was blocked.
func (r *ChatRegistry) Remove(chatID int64) error {
	r.mu.Lock()
	delete(r.chats, chatID)
	r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChats).Delete(key(chatID))
	})
}

// Chats returns all registered subscribers
func (r *ChatRegistry) Chats() []Chat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Chat, 0, len(r.chats))
	for _, chat := range r.chats {
		out = append(out, chat)
	}
	return out
}

func key(chatID int64) []byte {
	return []byte(strconv.FormatInt(chatID, 10))
}

// Package store persists the application's restorable state (the flat
// playlist's track paths and the playing cursor) in a local BoltDB file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState = []byte("state")
)

// Keys within the state bucket
var (
	keyPlaylist = []byte("playlist")
	keyCursor   = []byte("cursor")
)

// SavedState is the snapshot persisted between runs.
type SavedState struct {
	TrackPaths []string `json:"track_paths"`
	Cursor     int      `json:"cursor"` // -1 when nothing was playing
}

// StateStore implements startup-restore persistence using BoltDB.
type StateStore struct {
	db *bolt.DB
}

// Open opens (creating if needed) the state database under dir. An empty
// dir yields a memory-only store that never persists.
func Open(dir string) (*StateStore, error) {
	if dir == "" {
		return &StateStore{}, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dir, "aural.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &StateStore{db: db}, nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the snapshot.
func (s *StateStore) Save(state SavedState) error {
	if s.db == nil {
		return nil
	}
	paths, err := json.Marshal(state.TrackPaths)
	if err != nil {
		return err
	}
	cursor, err := json.Marshal(state.Cursor)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if err := b.Put(keyPlaylist, paths); err != nil {
			return err
		}
		return b.Put(keyCursor, cursor)
	})
}

// Load reads the snapshot. ok is false when nothing was ever saved.
func (s *StateStore) Load() (state SavedState, ok bool) {
	state.Cursor = -1
	if s.db == nil {
		return state, false
	}
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		if v := b.Get(keyPlaylist); v != nil {
			if json.Unmarshal(v, &state.TrackPaths) == nil {
				ok = true
			}
		}
		if v := b.Get(keyCursor); v != nil {
			json.Unmarshal(v, &state.Cursor)
		}
		return nil
	})
	return state, ok
}

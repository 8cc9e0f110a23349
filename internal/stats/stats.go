// Package stats persists per-deck counters as one JSON snapshot in a
// key-value slot.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// DefaultKey is the slot the snapshot lives in unless configured otherwise.
const DefaultKey = "flashcardStats"

var (
	// ErrPersistenceRead covers every reason a stored snapshot cannot be used.
	ErrPersistenceRead = errors.New("stats snapshot unreadable")

	ErrSnapshotAbsent    = fmt.Errorf("%w: absent", ErrPersistenceRead)
	ErrSnapshotMalformed = fmt.Errorf("%w: malformed", ErrPersistenceRead)
)

// Encode serialises a snapshot. Map keys are emitted sorted, so equal
// snapshots encode identically.
func Encode(s models.Stats) (string, error) {
	if s == nil {
		s = models.Stats{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a snapshot. Anything other than an object of
// {viewed, flipped} objects with non-negative counters is malformed.
func Decode(raw string) (models.Stats, error) {
	var out models.Stats
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: not an object", ErrSnapshotMalformed)
	}
	for id, s := range out {
		if s.Viewed < 0 || s.Flipped < 0 {
			return nil, fmt.Errorf("%w: negative counter for %q", ErrSnapshotMalformed, id)
		}
	}
	return out, nil
}

// Merge returns a copy of snapshot holding an entry for every id in ids,
// zero for any that were missing. Entries for ids not listed are kept.
func Merge(snapshot models.Stats, ids []string) models.Stats {
	out := snapshot.Clone()
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = models.DeckStats{}
		}
	}
	return out
}

// Store reads and writes the snapshot through a KVRepository.
type Store struct {
	kv  repository.KVRepository
	key string
}

// NewStore creates a Store using key, or DefaultKey when key is empty.
func NewStore(kv repository.KVRepository, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Key returns the slot name.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored snapshot. Errors wrap ErrPersistenceRead whether
// the slot is empty, holds garbage, or could not be read at all.
func (s *Store) Load(ctx context.Context) (models.Stats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")

	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Warn("failed to read snapshot %s: %v", s.key, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	if !found {
		log.Debug("no snapshot stored under %s", s.key)
		return nil, ErrSnapshotAbsent
	}
	snapshot, err := Decode(raw)
	if err != nil {
		log.Warn("discarding snapshot %s: %v", s.key, err)
		return nil, err
	}
	log.Debug("loaded snapshot %s with %d decks", s.key, len(snapshot))
	return snapshot, nil
}

// Save overwrites the slot with the full snapshot.
func (s *Store) Save(ctx context.Context, snapshot models.Stats) error {
	raw, err := Encode(snapshot)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write stats %s: %w", s.key, err)
	}
	return nil
}

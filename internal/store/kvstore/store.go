// Package kvstore persists the envelope document through a kv.Adapter.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/kv"
)

// Store reads and writes the single envelope document. The envelope is
// always exchanged as a whole; there is no partial-field update.
type Store struct {
	adapter kv.Adapter
}

func NewStore(adapter kv.Adapter) *Store {
	return &Store{adapter: adapter}
}

// LoadRaw returns the stored envelope JSON verbatim. An absent document
// yields ("", nil): empty state is never an error.
func (s *Store) LoadRaw(ctx context.Context) (string, error) {
	raw, err := s.adapter.Get(ctx, KeyAppData)
	if err != nil {
		return "", fmt.Errorf("failed to load envelope: %w", err)
	}
	return raw, nil
}

// SaveRaw persists the given JSON verbatim as the new envelope. No merge,
// no shape validation: last writer wins.
func (s *Store) SaveRaw(ctx context.Context, raw string) error {
	if err := s.adapter.Put(ctx, KeyAppData, raw); err != nil {
		return fmt.Errorf("failed to save envelope: %w", err)
	}
	return nil
}

// LoadEnvelope parses the stored document. An absent document yields the
// default empty envelope.
func (s *Store) LoadEnvelope(ctx context.Context) (domain.Envelope, error) {
	empty := domain.Envelope{Links: []domain.Link{}, Categories: []domain.Category{}}

	raw, err := s.LoadRaw(ctx)
	if err != nil {
		return empty, err
	}
	if raw == "" {
		return empty, nil
	}

	var env domain.Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return empty, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.Links == nil {
		env.Links = []domain.Link{}
	}
	if env.Categories == nil {
		env.Categories = []domain.Category{}
	}
	return env, nil
}

// SaveEnvelope marshals and persists the envelope.
func (s *Store) SaveEnvelope(ctx context.Context, env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return s.SaveRaw(ctx, string(data))
}

// Snapshot copies the current envelope under a timestamped key and records
// it in the snapshot index. Returns ("", nil) when there is nothing stored
// yet.
func (s *Store) Snapshot(ctx context.Context, now time.Time) (string, error) {
	raw, err := s.LoadRaw(ctx)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	key := SnapshotKey(now.UTC().Format("2006-01-02T15-04-05"))
	if err := s.adapter.Put(ctx, key, raw); err != nil {
		return "", fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}

	index, err := s.Snapshots(ctx)
	if err != nil {
		return "", err
	}
	for _, existing := range index {
		if existing == key {
			return key, nil
		}
	}
	index = append(index, key)
	if err := s.saveSnapshotIndex(ctx, index); err != nil {
		return "", err
	}
	return key, nil
}

// Snapshots returns the recorded snapshot keys, oldest first.
func (s *Store) Snapshots(ctx context.Context) ([]string, error) {
	raw, err := s.adapter.Get(ctx, KeySnapshotIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot index: %w", err)
	}
	if raw == "" {
		return []string{}, nil
	}

	var index []string
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot index: %w", err)
	}
	sort.Strings(index)
	return index, nil
}

// PruneSnapshots deletes the oldest snapshots beyond keep. Adapters without
// delete support only have their index trimmed.
func (s *Store) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	index, err := s.Snapshots(ctx)
	if err != nil {
		return 0, err
	}
	if len(index) <= keep {
		return 0, nil
	}

	victims := index[:len(index)-keep]
	remaining := index[len(index)-keep:]

	deleter, canDelete := s.adapter.(kv.Deleter)
	for _, key := range victims {
		if !canDelete {
			continue
		}
		if err := deleter.Delete(ctx, key); err != nil {
			return 0, fmt.Errorf("failed to delete snapshot %s: %w", key, err)
		}
	}

	if err := s.saveSnapshotIndex(ctx, remaining); err != nil {
		return 0, err
	}
	return len(victims), nil
}

func (s *Store) saveSnapshotIndex(ctx context.Context, index []string) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot index: %w", err)
	}
	if err := s.adapter.Put(ctx, KeySnapshotIndex, string(data)); err != nil {
		return fmt.Errorf("failed to save snapshot index: %w", err)
	}
	return nil
}

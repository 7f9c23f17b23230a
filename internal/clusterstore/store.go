// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package clusterstore persists the ClusterIndex to disk. It is the only
// component that mutates the on-disk cluster index; the Assignment and
// Reclustering engines call through it rather than writing files directly.
package clusterstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/testable"
)

// Store loads and persists a conflict.Index at a fixed path.
type Store struct {
	path string
	fs   testable.FileSystem
}

// New returns a Store backed by the index file at path.
func New(path string) *Store {
	return &Store{path: path, fs: testable.DefaultFS}
}

// SetFS replaces the store's FileSystem. Intended for testing.
func (s *Store) SetFS(fs testable.FileSystem) {
	if fs == nil {
		fs = testable.DefaultFS
	}
	s.fs = fs
}

// Load reads the index file. A missing or unparseable file
// is not an error at this layer — it returns an empty index. Callers that
// need to distinguish "absent" from "corrupt" (IO-fatal) should
// call LoadStrict instead.
func (s *Store) Load() *conflict.Index {
	idx, err := s.LoadStrict()
	if err != nil {
		return conflict.NewIndex()
	}
	return idx
}

// LoadStrict reads the index file and returns an error when the file
// exists but cannot be parsed as a valid document. A missing file still
// returns an empty index with no error, matching "load returns
// an empty index if the file is absent".
func (s *Store) LoadStrict() (*conflict.Index, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return conflict.NewIndex(), nil
		}
		return nil, fmt.Errorf("clusterstore: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return conflict.NewIndex(), nil
	}

	idx := conflict.NewIndex()
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("clusterstore: parse %s: %w", s.path, err)
	}
	return idx, nil
}

// Save writes the entire index, pretty-printed with two-space indentation
// using a write-to-temp-then-rename sequence so readers never
// observe a partially written file. A write failure is a
// hard requirement failure: the caller must abort the process.
func (s *Store) Save(idx *conflict.Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("clusterstore: marshal index: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("clusterstore: create %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(s.path), uuid.NewString()))
	if err := s.fs.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("clusterstore: write temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("clusterstore: rename into place: %w", err)
	}
	return nil
}

// Insert appends pair to the cluster named id in the persisted index,
// creating the cluster if id does not already exist, then saves.
func (s *Store) Insert(id int, pair conflict.Pair) error {
	idx := s.Load()
	idx.Insert(id, pair)
	return s.Save(idx)
}

// Replace overwrites the entire persisted index and saves it. Used by the
// reclustering engine once a recluster has been accepted.
func (s *Store) Replace(idx *conflict.Index) error {
	return s.Save(idx)
}

// Path returns the index file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Package pkg provides shared utilities for patchbay.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Journal is a generic append-only on-disk log of items of type T. Replays
// use it to persist frame reports without keeping every frame in memory.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type journalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewJournal creates a journal file named like pattern (a CreateTemp
// pattern) inside dir, creating dir if needed.
func NewJournal[T any](dir, pattern string) (Journal[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create journal directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		slog.Error("failed to create journal file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create journal file: %w", err)
	}

	slog.Debug("created journal", "path", file.Name())

	return &journalImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenJournal opens an existing journal for reading. Len is recovered by
// decoding the whole file once.
func OpenJournal[T any](path string) (Journal[T], error) {
	j := &journalImpl[T]{path: filepath.Clean(path)}

	var count uint64

	err := j.scan(func(uint64, T) error {
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	j.length = count

	return j, nil
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string { return j.path }

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.encoder == nil {
		return fmt.Errorf("journal %s is read-only", j.path)
	}

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	j.length++

	return nil
}

// AppendBatch implements Journal.
func (j *journalImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get implements Journal.
func (j *journalImpl[T]) Get(index uint64) (T, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var zero T

	if index >= j.length {
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, j.length)
	}

	var got T
	found := false

	err := j.scan(func(i uint64, item T) error {
		if i == index {
			got = item
			found = true
		}

		return nil
	})
	if err != nil {
		return zero, err
	}

	if !found {
		return zero, fmt.Errorf("index %d missing from journal %s", index, j.path)
	}

	return got, nil
}

// Range implements Journal.
func (j *journalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.scan(fn)
}

// scan decodes the journal from the start, calling fn per item. Callers
// must hold the mutex unless the journal is still private to them.
func (j *journalImpl[T]) scan(fn func(index uint64, item T) error) error {
	file, err := os.Open(j.path)
	if err != nil {
		slog.Error("failed to open journal", "path", j.path, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); ; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		if err := j.file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
			return err
		}

		j.file = nil

		slog.Debug("closed journal", "path", j.path, "length", j.length)
	}

	return nil
}

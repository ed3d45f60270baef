// Package counter provides the durable access counter backends. Both
// implementations serialize increments so concurrent requests never lose an
// update.
package counter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileCounter persists the counter as a decimal integer in a single file.
// Increments hold a process-wide mutex and replace the file atomically via
// rename, so concurrent requests within one process cannot race and a crash
// mid-write cannot tear the value. The file is created with 0 on first use.
type FileCounter struct {
	mu   sync.Mutex
	path string
}

// NewFileCounter creates the counter store at path, creating parent
// directories as needed.
func NewFileCounter(path string) (*FileCounter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create counter directory: %w", err)
		}
	}
	return &FileCounter{path: path}, nil
}

// Increment adds one to the persisted total and returns the new value.
func (c *FileCounter) Increment(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total, err := c.load()
	if err != nil {
		return 0, err
	}
	total++
	if err := c.store(total); err != nil {
		return 0, err
	}
	return total, nil
}

// Read returns the persisted total without incrementing.
func (c *FileCounter) Read(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *FileCounter) load() (int64, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter file: %w", err)
	}

	total, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter file %s: %w", c.path, err)
	}
	return total, nil
}

// store writes the value to a temp file in the same directory and renames it
// over the target. Rename within one filesystem is atomic, so readers always
// see either the old or the new value, never a partial write.
func (c *FileCounter) store(total int64) error {
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".contador-*")
	if err != nil {
		return fmt.Errorf("create temp counter file: %w", err)
	}

	_, writeErr := fmt.Fprintf(tmp, "%d\n", total)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp counter file: %w", firstErr(writeErr, closeErr))
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace counter file: %w", err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

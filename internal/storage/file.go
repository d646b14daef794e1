package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emphz/rfqcart/pkg/types"
)

// FileChannel stores the cart as a single document on disk.
type FileChannel struct {
	path string
}

// NewFileChannel returns a channel backed by the file at path.
func NewFileChannel(path string) *FileChannel {
	return &FileChannel{path: path}
}

// Name implements types.Channel.
func (c *FileChannel) Name() string { return "file" }

// Read implements types.Channel. A missing or empty file holds no value.
func (c *FileChannel) Read() (string, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", types.ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return "", types.ErrNoValue
	}
	return string(data), nil
}

// Write implements types.Channel.
func (c *FileChannel) Write(value string) error {
	return writeFileAtomic(c.path, []byte(value))
}

// writeFileAtomic replaces path with data using the temp-file, fsync, rename
// pattern so a reader never observes a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rfq-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

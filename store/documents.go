package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// readDocument decodes the JSON document at path into out. A missing file
// is not an error: out keeps its zero value, matching the behavior of a
// fresh deployment that has not persisted anything yet.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}

	return nil
}

// writeDocument persists v as JSON at path. The document is written to a
// temp file in the same directory and renamed into place so a concurrent
// reader sees either the old or the new document, never a torn one.
func writeDocument(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing %s: %w", path, err)
	}

	return nil
}

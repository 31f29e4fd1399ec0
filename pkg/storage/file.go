// Package storage loads and saves the ledger document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"baitbot/pkg/ledger"
)

// Backend is a whole-document store. Save replaces the stored document.
type Backend interface {
	Load() (*ledger.Document, error)
	Save(doc *ledger.Document) error
}

// FileStore keeps the document as an indented JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load reads the document. A missing file yields an empty document.
func (f *FileStore) Load() (*ledger.Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	doc := ledger.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return normalize(doc), nil
}

// Save writes the document to a temp file next to the target and renames it
// into place.
func (f *FileStore) Save(doc *ledger.Document) error {
	data, err := json.MarshalIndent(normalize(doc), "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// normalize fills nil maps so the document always serialises all three keys.
func normalize(doc *ledger.Document) *ledger.Document {
	if doc == nil {
		return ledger.NewDocument()
	}
	if doc.Scores == nil {
		doc.Scores = make(map[string]int)
	}
	if doc.Baits == nil {
		doc.Baits = make(map[string][]string)
	}
	if doc.DebaitCooldowns == nil {
		doc.DebaitCooldowns = make(map[string]float64)
	}
	return doc
}

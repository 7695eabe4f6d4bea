package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/fo76-feeds/internal/feed"
)

// Storage handles persistence of feed documents
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir, creating it if needed.
func New(dir string) (*Storage, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dir: dir,
	}, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the directory files are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the full path of file inside the storage directory.
func (s *Storage) Path(file string) string {
	return filepath.Join(s.dir, file)
}

// WriteDoc writes doc as indented JSON.
func (s *Storage) WriteDoc(file string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}
	return s.WriteFile(file, append(data, '\n'))
}

// WriteFile replaces file with data atomically.
func (s *Storage) WriteFile(file string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+file+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", file, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()        // nolint:errcheck
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("closing %s: %w", file, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("setting mode on %s: %w", file, err)
	}
	if err := os.Rename(tmpName, s.Path(file)); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("replacing %s: %w", file, err)
	}
	return nil
}

// ReadDoc decodes file into into. It reports false, with no error, when the
// file does not exist yet.
func (s *Storage) ReadDoc(file string, into any) (bool, error) {
	data, err := os.ReadFile(s.Path(file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", file, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("parsing %s: %w", file, err)
	}
	return true, nil
}

// MarkStale flags file as stale after its source failed to load. The previous
// payload and fetchedAt are kept. With no previous file, a bare envelope is
// written so consumers still find the document.
func (s *Storage) MarkStale(file, source string, fetchErr error) error {
	reason := "source unavailable"
	if fetchErr != nil {
		reason = fetchErr.Error()
	}

	var doc map[string]json.RawMessage
	found, err := s.ReadDoc(file, &doc)
	if err != nil || !found || doc == nil {
		// An unreadable previous file is replaced like a missing one.
		doc = map[string]json.RawMessage{
			"version":   mustRaw(feed.SchemaVersion),
			"fetchedAt": json.RawMessage("null"),
		}
		if source != "" {
			doc["source"] = mustRaw(source)
		}
	}

	doc["stale"] = json.RawMessage("true")
	doc["error"] = mustRaw(reason)

	return s.WriteDoc(file, doc)
}

func mustRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("storage: encoding %T: %v", v, err))
	}
	return data
}

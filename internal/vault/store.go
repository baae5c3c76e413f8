// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault persists generated notes and orchestrates whole-vault
// generation: topics, graph, notes, index documents, and Obsidian
// configuration. See docs/ARCHITECTURE.md § Vault Generation.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxNoteNameLen bounds sanitized note names for filesystem portability.
const maxNoteNameLen = 100

// forbiddenNameChars are replaced with underscores during sanitization.
const forbiddenNameChars = `<>:"/\|?*`

// Store persists notes as Markdown files under one vault directory.
type Store struct {
	dir string
}

// NewStore creates the vault directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the vault directory path.
func (s *Store) Dir() string {
	return s.dir
}

// CreateNote writes content to <vault>/<name>.md, creating intermediate
// directories for nested names.
func (s *Store) CreateNote(name, content string) error {
	path := filepath.Join(s.dir, name+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating note directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing note %s: %w", name, err)
	}
	return nil
}

// UpdateNote overwrites an existing note with new content.
func (s *Store) UpdateNote(name, content string) error {
	return s.CreateNote(name, content)
}

// ReadNote returns the content of <vault>/<name>.md.
func (s *Store) ReadNote(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".md"))
	if err != nil {
		return "", fmt.Errorf("reading note %s: %w", name, err)
	}
	return string(data), nil
}

// ListNotes returns the names (relative paths without extension) of all
// Markdown notes in the vault, skipping the .obsidian configuration tree.
func (s *Store) ListNotes() ([]string, error) {
	var notes []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == obsidianDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		notes = append(notes, strings.TrimSuffix(rel, ".md"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// SanitizeName converts a topic into a safe note identifier: forbidden
// filesystem characters become underscores, leading and trailing dots and
// spaces are stripped, and the result is truncated to 100 characters. The
// rule is bit-exact for interoperability with external note stores, and
// idempotent over its own output.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(forbiddenNameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}

	cleaned := strings.Trim(b.String(), ". ")
	if runes := []rune(cleaned); len(runes) > maxNoteNameLen {
		cleaned = string(runes[:maxNoteNameLen])
	}
	return cleaned
}

// Package jsonstore persists the whole dataset as a single JSON document on
// disk. It is the embedded backend used for single-node deployments; every
// operation loads the document, mutates it and rewrites the file under a
// process-wide lock.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type document struct {
	Leads    []leadRecord    `json:"leads"`
	Users    []userRecord    `json:"users"`
	Expenses []expenseRecord `json:"expenses"`
}

type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type leadRecord struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
	Called       bool      `json:"called"`
	Source       string    `json:"source,omitempty"`
	PlaceID      *string   `json:"place_id,omitempty"`
	Website      *string   `json:"website,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	ReviewCount  *int      `json:"review_count,omitempty"`
	PriceLevel   *string   `json:"price_level,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type expenseRecord struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Frequency   string    `json:"frequency"`
	ReceiptPath *string   `json:"receipt_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store owns the backing file and serialises access to it.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open prepares the backing file, creating an empty document when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(&document{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	return s, nil
}

// view runs fn against a read-only snapshot of the document.
func (s *Store) view(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against the document and rewrites the file when fn succeeds.
func (s *Store) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var doc document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode data file: %w", err)
		}
	}
	return &doc, nil
}

// write replaces the file atomically via a sibling temp file.
func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

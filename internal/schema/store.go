// Package schema manages the category table and the per-category dynamic
// attribute definitions. Configuration is two-tier: an admin-authored override
// file is read preferentially, and the compiled-in default table is used when
// the file is absent or structurally invalid. Writes go through a temp file
// plus rename so readers never observe a half-written document.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"revive/internal/domain"
)

type document struct {
	Categories     []string                     `json:"categories"`
	CategoryFields map[string][]domain.FieldDef `json:"category_fields"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store persisting overrides at path. The file is not
// created until the first successful mutation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Categories returns the category names in insertion order, deduplicated,
// with the catch-all category guaranteed present (appended last if missing).
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return categoriesOf(s.load())
}

// CategoryFields returns the field definitions per category. Every category
// returned by Categories has an entry, defaulting to an empty list.
func (s *Store) CategoryFields() map[string][]domain.FieldDef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fieldsOf(s.load())
}

// FieldsFor returns the field definitions for one category, or an empty list
// when the category defines none or does not exist.
func (s *Store) FieldsFor(category string) []domain.FieldDef {
	return s.CategoryFields()[strings.TrimSpace(category)]
}

// Upsert inserts, renames or updates a category. Three mutually exclusive
// cases, decided by oldName:
//
//   - oldName empty: insert newName (degrades to a fields update when newName
//     already exists, no duplicate is created)
//   - oldName != newName: rename, keeping the list position and migrating the
//     field definitions; fails when newName is taken or oldName is unknown
//   - oldName == newName: fields-only update
//
// Validation failures commit nothing.
func (s *Store) Upsert(oldName, newName string, fields []domain.FieldDef) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)

	if newName == "" {
		return fmt.Errorf("%w: category name must not be empty", domain.ErrValidation)
	}
	if utf8.RuneCountInString(newName) > MaxNameLen {
		return fmt.Errorf("%w: category name must be at most %d characters", domain.ErrValidation, MaxNameLen)
	}
	normalized, err := normalizeFields(fields)
	if err != nil {
		return err
	}
	if oldName == CatchAll && oldName != newName {
		return fmt.Errorf("%w: the %q category cannot be renamed", domain.ErrValidation, CatchAll)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	categories := categoriesOf(doc)
	fieldsMap := fieldsOf(doc)

	switch {
	case oldName == "":
		if !contains(categories, newName) {
			categories = append(categories, newName)
		}
		fieldsMap[newName] = normalized
	case oldName != newName:
		if contains(categories, newName) {
			return fmt.Errorf("%w: a category named %q already exists", domain.ErrConflict, newName)
		}
		if !contains(categories, oldName) {
			return fmt.Errorf("%w: category %q", domain.ErrNotFound, oldName)
		}
		for i, c := range categories {
			if c == oldName {
				categories[i] = newName
			}
		}
		fieldsMap[newName] = normalized
		delete(fieldsMap, oldName)
	default:
		fieldsMap[oldName] = normalized
	}

	return s.save(document{Categories: categories, CategoryFields: fieldsMap})
}

// Delete removes a category and its field definitions. The catch-all category
// is protected. Referential integrity against items is the caller's job.
func (s *Store) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name must not be empty", domain.ErrValidation)
	}
	if name == CatchAll {
		return fmt.Errorf("%w: the %q category cannot be deleted", domain.ErrValidation, CatchAll)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	categories := categoriesOf(doc)
	if !contains(categories, name) {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, name)
	}

	kept := categories[:0]
	for _, c := range categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	fieldsMap := fieldsOf(doc)
	delete(fieldsMap, name)

	return s.save(document{Categories: kept, CategoryFields: fieldsMap})
}

// load reads the override file, falling back to the compiled defaults on any
// read, parse or validation failure. Callers must hold s.mu.
func (s *Store) load() document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return defaultDocument()
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return defaultDocument()
	}
	if err := validateDocument(doc); err != nil {
		return defaultDocument()
	}
	return doc
}

// save validates and atomically replaces the override file. Callers must hold
// s.mu.
func (s *Store) save(doc document) error {
	doc.Categories = categoriesOf(doc)
	if doc.CategoryFields == nil {
		doc.CategoryFields = map[string][]domain.FieldDef{}
	}
	for _, c := range doc.Categories {
		if _, ok := doc.CategoryFields[c]; !ok {
			doc.CategoryFields[c] = []domain.FieldDef{}
		}
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding category config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing category config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing category config: %w", err)
	}
	return nil
}

func validateDocument(doc document) error {
	seen := map[string]bool{}
	for _, c := range doc.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate category %q", domain.ErrValidation, c)
		}
		seen[c] = true
	}
	for cat, fields := range doc.CategoryFields {
		if strings.TrimSpace(cat) == "" {
			return fmt.Errorf("%w: category names must not be empty", domain.ErrValidation)
		}
		if len(fields) > MaxFieldsPerCategory {
			return fmt.Errorf("%w: %q has more than %d fields", domain.ErrValidation, cat, MaxFieldsPerCategory)
		}
		keys := map[string]bool{}
		for _, f := range fields {
			if strings.TrimSpace(f.Key) == "" || strings.TrimSpace(f.Label) == "" {
				return fmt.Errorf("%w: fields of %q need a key and a label", domain.ErrValidation, cat)
			}
			if keys[f.Key] {
				return fmt.Errorf("%w: %q has a duplicate field key %q", domain.ErrValidation, cat, f.Key)
			}
			keys[f.Key] = true
		}
	}
	return nil
}

func normalizeFields(fields []domain.FieldDef) ([]domain.FieldDef, error) {
	out := make([]domain.FieldDef, 0, len(fields))
	keys := map[string]bool{}
	for _, f := range fields {
		f.Key = strings.TrimSpace(f.Key)
		f.Label = strings.TrimSpace(f.Label)
		if f.Key == "" || f.Label == "" {
			return nil, fmt.Errorf("%w: every field needs a key and a label", domain.ErrValidation)
		}
		if keys[f.Key] {
			return nil, fmt.Errorf("%w: duplicate field key %q", domain.ErrValidation, f.Key)
		}
		keys[f.Key] = true
		out = append(out, f)
	}
	if len(out) > MaxFieldsPerCategory {
		return nil, fmt.Errorf("%w: at most %d fields per category", domain.ErrValidation, MaxFieldsPerCategory)
	}
	return out, nil
}

func categoriesOf(doc document) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(doc.Categories)+1)
	for _, c := range doc.Categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if !seen[CatchAll] {
		out = append(out, CatchAll)
	}
	return out
}

func fieldsOf(doc document) map[string][]domain.FieldDef {
	out := make(map[string][]domain.FieldDef, len(doc.CategoryFields))
	for cat, fields := range doc.CategoryFields {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			continue
		}
		if len(fields) > MaxFieldsPerCategory {
			fields = fields[:MaxFieldsPerCategory]
		}
		out[cat] = append([]domain.FieldDef(nil), fields...)
	}
	for _, c := range categoriesOf(doc) {
		if _, ok := out[c]; !ok {
			out[c] = []domain.FieldDef{}
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

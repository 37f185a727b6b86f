package services

import (
	"fmt"
	"strings"
	"time"

	"revive/internal/attr"
	"revive/internal/domain"
	"revive/internal/media"
	"revive/internal/repos"
	"revive/internal/schema"
	"revive/internal/validate"
)

// CategoryAll is the sentinel meaning "no category restriction" in Search.
const CategoryAll = "all"

type CatalogService struct {
	Items   *repos.ItemRepo
	Schemas *schema.Store
	Media   *media.Store
}

func NewCatalogService(items *repos.ItemRepo, schemas *schema.Store, m *media.Store) *CatalogService {
	return &CatalogService{Items: items, Schemas: schemas, Media: m}
}

// Add validates and inserts a new item. The category must exist right now;
// the dynamic values are encoded against its current field definitions and
// every missing required field is reported at once. imageSource, when set,
// is a path to an uploaded temp file that gets copied into the media store.
func (s *CatalogService) Add(name, category, description, address, contact, imageSource string, values map[string]string) (*domain.Item, error) {
	name, ok := validate.Required(name)
	if !ok {
		return nil, fmt.Errorf("%w: item name must not be empty", domain.ErrValidation)
	}
	contact, ok = validate.Required(contact)
	if !ok {
		return nil, fmt.Errorf("%w: contact must not be empty", domain.ErrValidation)
	}

	category = strings.TrimSpace(category)
	if !containsString(s.Schemas.Categories(), category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	attrs, missing := attr.Encode(s.Schemas.FieldsFor(category), values)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: required fields missing: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	id, err := s.Items.NextID()
	if err != nil {
		return nil, err
	}

	// The image copy is deliberately outside any transaction; a crash between
	// copy and insert can leave an orphan file behind.
	image := ""
	if imageSource != "" {
		image, err = s.Media.SaveImage(imageSource, id)
		if err != nil {
			return nil, err
		}
	}

	it := domain.Item{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(description),
		Contact:     contact,
		Image:       image,
		CreateTime:  time.Now().Format("2006-01-02 15:04:05"),
		Address:     strings.TrimSpace(address),
		Attributes:  attr.Marshal(attrs),
	}
	if err := s.Items.Insert(it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Delete removes an item by its (string-typed, form-supplied) id. The stored
// image is removed best effort; a failure there never blocks the record.
func (s *CatalogService) Delete(rawID string) (*domain.Item, error) {
	id, ok := validate.ItemID(rawID)
	if !ok {
		return nil, fmt.Errorf("%w: item id must be a number", domain.ErrValidation)
	}
	it, err := s.Items.Get(id)
	if err != nil {
		return nil, err
	}
	s.Media.Remove(it.Image)
	if err := s.Items.Delete(id); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *CatalogService) List() ([]domain.Item, error) {
	return s.Items.List()
}

// Search filters the full catalog in memory. categories restricts to the
// given set unless it is empty or carries the "all" sentinel; keyword, when
// non-empty, matches name or description case-insensitively. Both compose as
// AND. An empty result is a normal outcome.
func (s *CatalogService) Search(keyword string, categories []string) ([]domain.Item, error) {
	items, err := s.Items.List()
	if err != nil {
		return nil, err
	}

	wanted := map[string]bool{}
	restrict := false
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || strings.EqualFold(c, CategoryAll) {
			restrict = false
			wanted = nil
			break
		}
		wanted[c] = true
		restrict = true
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if restrict && !wanted[it.Category] {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(it.Name), keyword) &&
			!strings.Contains(strings.ToLower(it.Description), keyword) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

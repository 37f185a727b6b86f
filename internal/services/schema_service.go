package services

import (
	"fmt"

	"revive/internal/domain"
	"revive/internal/repos"
	"revive/internal/schema"
)

// SchemaService fronts the category schema store with the role checks and the
// referential-integrity guard that need the item catalog.
type SchemaService struct {
	Schemas *schema.Store
	Items   *repos.ItemRepo
}

func NewSchemaService(schemas *schema.Store, items *repos.ItemRepo) *SchemaService {
	return &SchemaService{Schemas: schemas, Items: items}
}

func (s *SchemaService) Categories() []string {
	return s.Schemas.Categories()
}

func (s *SchemaService) CategoryFields() map[string][]domain.FieldDef {
	return s.Schemas.CategoryFields()
}

// Upsert is admin-gated; the acting user is checked on every call.
func (s *SchemaService) Upsert(actor *domain.User, oldName, newName string, fields []domain.FieldDef) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: editing categories requires the admin role", domain.ErrForbidden)
	}
	return s.Schemas.Upsert(oldName, newName, fields)
}

// Delete removes a category unless any item still references it.
func (s *SchemaService) Delete(actor *domain.User, name string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: editing categories requires the admin role", domain.ErrForbidden)
	}
	n, err := s.Items.CountByCategory(name)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d item(s) still use category %q", domain.ErrInUse, n, name)
	}
	return s.Schemas.Delete(name)
}

package services_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"revive/internal/domain"
	"revive/internal/media"
	"revive/internal/repos"
	"revive/internal/schema"
	"revive/internal/services"
)

func schemaFixture(t *testing.T) (*services.SchemaService, *services.CatalogService) {
	t.Helper()
	db := memdb(t)
	schemas := schema.NewStore(filepath.Join(t.TempDir(), "category_config.json"))
	m, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	items := repos.NewItemRepo(db)
	return services.NewSchemaService(schemas, items), services.NewCatalogService(items, schemas, m)
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	schemaSvc, catalogSvc := schemaFixture(t)

	if _, err := catalogSvc.Add("Calculus textbook", "Books", "", "", "b@test.dev", "", map[string]string{"author": "Stewart"}); err != nil {
		t.Fatal(err)
	}

	err := schemaSvc.Delete(admin, "Books")
	if !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("want in-use error, got %v", err)
	}
	// The failure names the reference count.
	if !strings.Contains(err.Error(), "1 item") {
		t.Fatalf("error should carry the count: %q", err)
	}

	// Once the item is gone the delete goes through.
	if _, err := catalogSvc.Delete("1"); err != nil {
		t.Fatal(err)
	}
	if err := schemaSvc.Delete(admin, "Books"); err != nil {
		t.Fatal(err)
	}
	for _, c := range schemaSvc.Categories() {
		if c == "Books" {
			t.Fatal("Books still listed after delete")
		}
	}
}

func TestSchemaAdminGate(t *testing.T) {
	schemaSvc, _ := schemaFixture(t)

	if err := schemaSvc.Upsert(plainUser, "", "Comics", nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin upsert: want forbidden, got %v", err)
	}
	if err := schemaSvc.Delete(plainUser, "Books"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin delete: want forbidden, got %v", err)
	}
	if err := schemaSvc.Delete(nil, "Books"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("nil actor delete: want forbidden, got %v", err)
	}
}

func TestUpsertThenFieldsVisibleToCatalog(t *testing.T) {
	schemaSvc, catalogSvc := schemaFixture(t)

	fields := []domain.FieldDef{{Key: "artist", Label: "Artist", Required: true}}
	if err := schemaSvc.Upsert(admin, "", "Comics", fields); err != nil {
		t.Fatal(err)
	}

	// The new required field is enforced on the very next add.
	if _, err := catalogSvc.Add("Old comic", "Comics", "", "", "c@test.dev", "", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want validation error for missing Artist, got %v", err)
	}
	if _, err := catalogSvc.Add("Old comic", "Comics", "", "", "c@test.dev", "", map[string]string{"artist": "Tezuka"}); err != nil {
		t.Fatal(err)
	}
}

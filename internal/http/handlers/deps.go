package handlers

import (
	"revive/internal/media"
	"revive/internal/repos"
	"revive/internal/schema"
	"revive/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ItemHandler   *ItemHandler
	SearchHandler *SearchHandler
	AdminHandler  *AdminHandler
}

func NewDeps(db *sqlx.DB, schemas *schema.Store, m *media.Store, auth *services.AuthService) *Deps {
	itemRepo := repos.NewItemRepo(db)

	catalogSvc := services.NewCatalogService(itemRepo, schemas, m)
	schemaSvc := services.NewSchemaService(schemas, itemRepo)

	return &Deps{
		ItemHandler:   &ItemHandler{Catalog: catalogSvc, Schemas: schemaSvc},
		SearchHandler: &SearchHandler{Catalog: catalogSvc, Schemas: schemaSvc},
		AdminHandler:  &AdminHandler{Auth: auth, Schemas: schemaSvc},
	}
}

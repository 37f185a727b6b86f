package handlers

import (
	"strings"

	"revive/internal/log"
	"revive/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
	Schemas *services.SchemaService
}

// GET /search?q=...&category=...&category=...
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	var categories []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("category") {
		categories = append(categories, string(raw))
	}

	items, err := h.Catalog.Search(q, categories)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	return render(c, "search", fiber.Map{
		"Q":          q,
		"Categories": h.Schemas.Categories(),
		"Selected":   categories,
		"Items":      itemViews(items, h.Schemas.CategoryFields()),
		"Count":      len(items),
	})
}

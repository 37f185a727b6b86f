package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"os"
	"path/filepath"

	"revive/internal/domain"
	"revive/internal/log"
	"revive/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ItemHandler struct {
	Catalog *services.CatalogService
	Schemas *services.SchemaService
}

// GET /
func (h *ItemHandler) Home(c *fiber.Ctx) error {
	items, err := h.Catalog.List()
	if err != nil {
		log.Error(c, "items.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load items. Please retry."})
	}
	return render(c, "home", fiber.Map{
		"Items": itemViews(items, h.Schemas.CategoryFields()),
		"Count": len(items),
	})
}

// GET /items/new
func (h *ItemHandler) NewForm(c *fiber.Ctx) error {
	fields, _ := json.Marshal(h.Schemas.CategoryFields())
	return render(c, "item_new", fiber.Map{
		"Categories": h.Schemas.Categories(),
		"FieldsJSON": template.JS(fields), // consumed by the dynamic-inputs script
		"Err":        "",
	})
}

// POST /items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	category := c.FormValue("category")

	// Dynamic attribute inputs are posted as attr_<key>.
	values := map[string]string{}
	for _, f := range h.Schemas.CategoryFields()[category] {
		values[f.Key] = c.FormValue("attr_" + f.Key)
	}

	// Stage the upload in a temp file; the catalog copies it into the media
	// store under its final name.
	imageSource := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		tmp := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
		if err := c.SaveFile(fh, tmp); err != nil {
			log.Error(c, "items.upload.fail", err, nil)
			return h.createError(c, "Could not read the uploaded image")
		}
		imageSource = tmp
		defer os.Remove(tmp)
	}

	it, err := h.Catalog.Add(
		c.FormValue("name"), category, c.FormValue("description"),
		c.FormValue("address"), c.FormValue("contact"), imageSource, values,
	)
	if errors.Is(err, domain.ErrValidation) {
		return h.createError(c, err.Error())
	}
	if err != nil {
		log.Error(c, "items.create.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the item. Please retry."})
	}

	log.Audit(c, "items.create", map[string]any{"id": it.ID, "category": it.Category})
	return c.Redirect("/")
}

func (h *ItemHandler) createError(c *fiber.Ctx, msg string) error {
	fields, _ := json.Marshal(h.Schemas.CategoryFields())
	return c.Status(400).Render("item_new", fiber.Map{
		"Categories": h.Schemas.Categories(),
		"FieldsJSON": template.JS(fields),
		"Err":        msg,
		"CSRFToken":  c.Cookies("csrf_"),
	})
}

// POST /items/:id/delete
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	it, err := h.Catalog.Delete(c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(400).Render("notfound", fiber.Map{"Message": "Item id must be a number"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(404).Render("notfound", fiber.Map{"Message": "No item with that id"})
	case err != nil:
		log.Error(c, "items.delete.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the item. Please retry."})
	}

	log.Audit(c, "items.delete", map[string]any{"id": it.ID})
	return c.Redirect("/")
}

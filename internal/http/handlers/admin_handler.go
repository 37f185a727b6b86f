package handlers

import (
	"encoding/json"
	"errors"
	"net/url"

	"revive/internal/domain"
	applog "revive/internal/log"
	"revive/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Auth    *services.AuthService
	Schemas *services.SchemaService
}

func actingUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	pending, err := h.Auth.PendingUsers(actingUser(c))
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load pending users"})
	}
	return render(c, "admin_users", fiber.Map{"Pending": pending, "Msg": c.Query("msg")})
}

// POST /admin/users/approve
func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	username := c.FormValue("username")
	changed, err := h.Auth.Approve(actingUser(c), username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return render(c, "admin_users", fiber.Map{"Err": "No such user", "Pending": h.pendingOrNil(c)})
	case errors.Is(err, domain.ErrValidation):
		return render(c, "admin_users", fiber.Map{"Err": err.Error(), "Pending": h.pendingOrNil(c)})
	case err != nil:
		applog.Error(c, "admin.users.approve.fail", err, map[string]any{"username": username})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not approve the user"})
	}

	applog.Audit(c, "admin.users.approve", map[string]any{"username": username, "changed": changed})
	msg := "User approved"
	if !changed {
		msg = "User was already approved"
	}
	return c.Redirect("/admin/users?msg=" + url.QueryEscape(msg))
}

func (h *AdminHandler) pendingOrNil(c *fiber.Ctx) []domain.User {
	pending, err := h.Auth.PendingUsers(actingUser(c))
	if err != nil {
		return nil
	}
	return pending
}

// GET /admin/categories
func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	fieldsJSON := map[string]string{}
	for cat, fields := range h.Schemas.CategoryFields() {
		b, _ := json.MarshalIndent(fields, "", "  ")
		fieldsJSON[cat] = string(b)
	}
	return render(c, "admin_categories", fiber.Map{
		"Categories": h.Schemas.Categories(),
		"FieldsJSON": fieldsJSON,
		"Msg":        c.Query("msg"),
	})
}

// POST /admin/categories
// The field definitions arrive as a JSON array, matching what the editor
// textarea holds: [{"key":"author","label":"Author","required":true}, ...]
func (h *AdminHandler) UpsertCategory(c *fiber.Ctx) error {
	oldName := c.FormValue("old_name")
	newName := c.FormValue("new_name")

	raw := c.FormValue("fields_json")
	if raw == "" {
		raw = "[]"
	}
	var fields []domain.FieldDef
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return h.categoriesError(c, "Field definitions are not a valid JSON array")
	}

	err := h.Schemas.Upsert(actingUser(c), oldName, newName, fields)
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		return h.categoriesError(c, err.Error())
	case err != nil:
		applog.Error(c, "admin.categories.upsert.fail", err, map[string]any{"old": oldName, "new": newName})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the category"})
	}

	applog.Audit(c, "admin.categories.upsert", map[string]any{"old": oldName, "new": newName})
	return c.Redirect("/admin/categories?msg=" + url.QueryEscape("Category saved"))
}

// POST /admin/categories/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	name := c.FormValue("name")
	err := h.Schemas.Delete(actingUser(c), name)
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInUse):
		return h.categoriesError(c, err.Error())
	case err != nil:
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"name": name})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the category"})
	}

	applog.Audit(c, "admin.categories.delete", map[string]any{"name": name})
	return c.Redirect("/admin/categories?msg=" + url.QueryEscape("Category deleted"))
}

func (h *AdminHandler) categoriesError(c *fiber.Ctx, msg string) error {
	fieldsJSON := map[string]string{}
	for cat, fields := range h.Schemas.CategoryFields() {
		b, _ := json.MarshalIndent(fields, "", "  ")
		fieldsJSON[cat] = string(b)
	}
	return c.Status(400).Render("admin_categories", fiber.Map{
		"Categories": h.Schemas.Categories(),
		"FieldsJSON": fieldsJSON,
		"Err":        msg,
		"CSRFToken":  c.Cookies("csrf_"),
	})
}

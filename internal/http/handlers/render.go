package handlers

import (
	"html/template"

	"revive/internal/attr"
	"revive/internal/contact"
	"revive/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Fallback: read the CSRF cookie directly if Locals wasn't populated.
		if cookTok := c.Cookies("csrf_"); cookTok != "" {
			data["CSRFToken"] = cookTok
		}
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// ItemView is an item prepared for the card templates: formatted contact
// markup and the dynamic attributes rendered against the current schema.
type ItemView struct {
	domain.Item
	ContactHTML template.HTML
	AttrText    string
}

func itemViews(items []domain.Item, fields map[string][]domain.FieldDef) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ItemView{
			Item:        it,
			ContactHTML: contact.Format(it.Contact),
			AttrText:    attr.Render(fields[it.Category], it.Attributes),
		})
	}
	return out
}

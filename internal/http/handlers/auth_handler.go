package handlers

import (
	"errors"
	"time"

	"revive/internal/domain"
	"revive/internal/log"
	"revive/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := c.FormValue("username")
	pass := c.FormValue("password")

	_, err := h.Auth.Login(sid, username, pass)
	if err != nil {
		// Wrong password and not-yet-approved look the same on purpose.
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid username or password", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	err := h.Auth.Register(username, c.FormValue("password"), c.FormValue("contact"), c.FormValue("address"))
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(400).Render("register", fiber.Map{"Err": err.Error(), "CSRFToken": c.Cookies("csrf_")})
	case errors.Is(err, domain.ErrConflict):
		log.Security(c, "auth.register.conflict", map[string]any{"username": username})
		return c.Status(409).Render("register", fiber.Map{"Err": "That username is already taken", "CSRFToken": c.Cookies("csrf_")})
	case err != nil:
		log.Error(c, "auth.register.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}

	log.Audit(c, "auth.register.success", map[string]any{"username": username})
	return render(c, "login", fiber.Map{"Err": "", "Info": "Registered. An admin has to approve your account before you can sign in."})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	applog "sellnow/internal/log"
	"sellnow/internal/repos"
)

// RequireAdmin guards admin routes with a bcrypt-hashed API key supplied via
// the X-Admin-Key header.
func RequireAdmin(keys *repos.AdminKeyRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Admin-Key")
		if key == "" {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing admin key"})
		}
		hashes, err := keys.KeyHashes()
		if err != nil {
			applog.Error(c, "admin.keys.load", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "authorization unavailable"})
		}
		for _, h := range hashes {
			if bcrypt.CompareHashAndPassword([]byte(h), []byte(key)) == nil {
				return c.Next()
			}
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}
}

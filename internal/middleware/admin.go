package middleware

import (
	"strings"

	"github.com/faisal420-png/bdcinema/internal/config"
	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired gates the curation panel. A request passes when it carries the
// configured admin token header, an email on the configured admin list, or a
// JWT whose user row holds the admin role.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		userID, err := session.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, session.GetEmail(c)) {
			return c.Next()
		}

		// The claim alone is not trusted for role checks; the row is.
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			if user.Role == models.RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

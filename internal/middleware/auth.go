package middleware

import (
	"strings"

	"github.com/givehub/backend/internal/auth"
	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/rbac"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CtxAccountID = "account_id"
	CtxRole      = "role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxAccountID, claims.AccountID)
		c.Locals(CtxRole, claims.Role)

		return c.Next()
	}
}

func GetAccountID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxAccountID).(uuid.UUID)
	return id
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// RequirePermission gates a route on an rbac permission. Disbursing
// permissions stay admin-only regardless of the role map.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !rbac.HasPermission(role, permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		if rbac.IsDisbursing(permission) && role != rbac.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}

// AdminMiddleware requires the admin role.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != rbac.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}

package middleware

import (
	"strings"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/config"
	"medbridge/internal/pkg/jwt"
	"medbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer token in the Authorization header
// and puts the embedded claims in the request context. Claims are trusted
// without a store round-trip; role changes or blocking take effect when
// the token is re-issued.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware. Roles are
// matched exactly: admin does not implicitly satisfy other role checks.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// NGOOnly middleware allows only the ngo role
func NGOOnly() fiber.Handler {
	return RoleMiddleware(models.RoleNGO)
}

// VolunteerOnly middleware allows only the volunteer role
func VolunteerOnly() fiber.Handler {
	return RoleMiddleware(models.RoleVolunteer)
}

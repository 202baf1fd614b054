package middleware

import (
	"strings"

	"github.com/baomythoi/leefit/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		claims, message := parseBearer(authHeader, secret)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the caller identity when a bearer token is sent and
// lets anonymous requests through. A malformed or expired token is still
// rejected.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		claims, message := parseBearer(authHeader, secret)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
		}

		setClaims(c, claims)
		return c.Next()
	}
}

func parseBearer(authHeader, secret string) (*utils.Claims, string) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization header format"
	}

	claims, err := utils.ValidateToken(parts[1], secret)
	if err != nil {
		return nil, "Invalid or expired token"
	}
	return claims, ""
}

func setClaims(c *fiber.Ctx, claims *utils.Claims) {
	c.Locals("user_id", claims.UserID)
	c.Locals("email", claims.Email)
}

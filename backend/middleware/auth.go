package middleware

import (
	"strings"
	"zomgpow/backend/config"
	"zomgpow/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is where RequireAuth stores the resolved principal on the
// request context.
const PrincipalKey = "principal"

// RequireAuth gates every protected route. It only establishes who the
// caller is; whether that principal may touch a given class or goal is the
// handler's concern.
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("Authorization")
		if tokenString == "" {
			return utils.Unauthorized(c, "Missing authorization token")
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		principal, err := utils.ParseToken(tokenString, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal RequireAuth resolved, or nil on an
// unprotected route.
func PrincipalFromCtx(c *fiber.Ctx) *utils.Principal {
	principal, _ := c.Locals(PrincipalKey).(*utils.Principal)
	return principal
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"internhub/internal/auth"
	"internhub/internal/model"
)

// ActorLocalKey is the Fiber locals key holding the authenticated model.Actor.
const ActorLocalKey = "actor"

// TokenValidator verifies a bearer token.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type authErrorBody struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func denyRequest(c *fiber.Ctx, status int, code, message string) error {
	var body authErrorBody
	body.RequestID = RequestIDFromCtx(c)
	body.Error.Code = code
	body.Error.Message = message
	return c.Status(status).JSON(body)
}

// Authenticate requires a valid "Authorization: Bearer" token and stores the
// caller in locals under ActorLocalKey.
func Authenticate(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return denyRequest(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed bearer token")
		}
		claims, err := v.Validate(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return denyRequest(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "token expired")
			}
			return denyRequest(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		}
		c.Locals(ActorLocalKey, claims.Actor())
		return c.Next()
	}
}

// RequireRoles lets the request through only when the actor holds one of roles.
// It must run after Authenticate.
func RequireRoles(roles ...model.Role) fiber.Handler {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return denyRequest(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		if !allowed[actor.Role] {
			return denyRequest(c, fiber.StatusForbidden, "FORBIDDEN", "insufficient role")
		}
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by Authenticate.
func ActorFromCtx(c *fiber.Ctx) (model.Actor, bool) {
	actor, ok := c.Locals(ActorLocalKey).(model.Actor)
	return actor, ok
}

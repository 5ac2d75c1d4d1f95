package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/projetakip/projetakip-backend/internal/models"
)

const (
	actorLocal      = "actor"
	sessionKeyLocal = "session_key"
)

// RequireActor validates the bearer token and stores the caller's identity
// and conversation session key on the request context. Authentication
// itself lives elsewhere; this only trusts the signed claims.
func RequireActor(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		roleClaim, _ := claims["role"].(string)
		role, err := models.ParseRole(roleClaim)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Unknown role",
			})
		}

		subject, _ := claims["sub"].(string)
		name, _ := claims["name"].(string)
		actor := models.Actor{ID: subject, Name: name, Role: role}

		c.Locals(actorLocal, actor)
		c.Locals(sessionKeyLocal, sessionKeyFor(c, actor))
		return c.Next()
	}
}

// sessionKeyFor derives the conversation key: identity name first, then the
// caller's network address, then a random key. The last tier gives callers
// without any identifying trait an isolated but best-effort-only session.
func sessionKeyFor(c *fiber.Ctx, actor models.Actor) string {
	if actor.Name != "" {
		return "user:" + actor.Name
	}
	if ip := c.IP(); ip != "" {
		return "addr:" + ip
	}
	return "anon:" + uuid.NewString()
}

// ActorFrom returns the authenticated actor stored by RequireActor
func ActorFrom(c *fiber.Ctx) models.Actor {
	actor, _ := c.Locals(actorLocal).(models.Actor)
	return actor
}

// SessionKeyFrom returns the conversation session key for this request
func SessionKeyFrom(c *fiber.Ctx) string {
	key, _ := c.Locals(sessionKeyLocal).(string)
	return key
}

package middleware

import (
	"fmt"
	"strings"
	"time"

	"nestira/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const TokenCookie = "access_token"

// APIKeyGuard rejects requests without the shared api-access-key header.
func APIKeyGuard(c *fiber.Ctx) error {
	validKey := config.App.APIAccessKey
	if validKey == "" {
		// No key configured (local development), let requests through.
		return c.Next()
	}
	if c.Get("api-access-key") != validKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid API access key",
		})
	}
	return c.Next()
}

// SignToken issues the session token carried by the access_token cookie.
func SignToken(userID uint, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.App.JWTSecret))
}

// RequireAuth validates the session token from the Authorization header or
// the access_token cookie and stores its claims on the request context.
func RequireAuth(c *fiber.Ctx) error {
	tokenString := ""
	if authHeader := c.Get("Authorization"); authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token format, must be 'Bearer <token>'",
			})
		}
	} else {
		tokenString = c.Cookies(TokenCookie)
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.App.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	if userID, ok := claims["sub"].(float64); ok {
		c.Locals("user_id", uint(userID))
	}
	c.Locals("username", claims["username"])
	c.Locals("role", claims["role"])

	return c.Next()
}

// RequireAdmin allows only the admin role. It must run after RequireAuth.
func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin role required",
		})
	}
	return c.Next()
}

package middleware

import (
	"fmt"
	"os"
	"strings"

	"takura-freight/constants"
	"takura-freight/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT verifies a token issued by the platform's auth service. Claims
// carry at least user_id and role; this backend trusts them verbatim.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

func hasRole(claims jwt.MapClaims, requiredRoles []string) bool {
	role, _ := claims["role"].(string)
	for _, required := range requiredRoles {
		if required == constants.RoleAny || required == role {
			return true
		}
	}
	return false
}

// IsAuthenticated is a middleware that checks for a valid JWT token carrying
// one of the required roles.
func IsAuthenticated(requiredRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Fall back to the access cookie set by the frontend.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Authorization token missing",
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		if !hasRole(claims, requiredRoles) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Insufficient role",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireRoles creates a middleware allowing only the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return IsAuthenticated(roles)
}

// RequireAuthentication only requires a valid token, regardless of role.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated([]string{constants.RoleAny})
}

// ActingUser extracts the authenticated principal from the request context.
func ActingUser(c *fiber.Ctx) (userID string, role string, ok bool) {
	claims, found := c.Locals("user").(jwt.MapClaims)
	if !found {
		return "", "", false
	}
	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	return userID, role, userID != ""
}

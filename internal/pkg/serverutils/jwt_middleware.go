// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const authContextKey = "auth_context"

const RoleAdmin = "admin"

// AuthContext is the caller identity resolved from the bearer token.
// Services receive it explicitly instead of reading request locals.
type AuthContext struct {
	UserId        uuid.UUID
	Role          string
	Authenticated bool
}

func Anonymous() AuthContext {
	return AuthContext{}
}

func (a AuthContext) IsAdmin() bool {
	return a.Authenticated && a.Role == RoleAdmin
}

// GetAuthContext returns the identity stored by one of the JWT middlewares,
// or an anonymous context when no token was presented.
func GetAuthContext(ctx *fiber.Ctx) AuthContext {
	if auth, ok := ctx.Locals(authContextKey).(AuthContext); ok {
		return auth
	}
	return Anonymous()
}

// JwtMiddleware rejects requests without a valid bearer token.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		auth, err := parseToken(authHeader[7:], secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals(authContextKey, auth)
		ctx.Locals("user_id", auth.UserId.String())
		return ctx.Next()
	}
}

// OptionalJwtMiddleware attaches the identity when a valid token is present
// and lets anonymous callers through otherwise.
func OptionalJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
			if auth, err := parseToken(authHeader[7:], secret); err == nil {
				ctx.Locals(authContextKey, auth)
				ctx.Locals("user_id", auth.UserId.String())
			}
		}
		return ctx.Next()
	}
}

// AdminMiddleware must run after JwtMiddleware.
func AdminMiddleware(ctx *fiber.Ctx) error {
	auth := GetAuthContext(ctx)
	if !auth.Authenticated {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}
	if !auth.IsAdmin() {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Access denied: Admins only"))
	}
	return ctx.Next()
}

func parseToken(tokenStr, secret string) (AuthContext, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return AuthContext{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthContext{}, fmt.Errorf("invalid claims")
	}

	rawId, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(rawId)
	if err != nil {
		return AuthContext{}, fmt.Errorf("invalid user_id claim: %w", err)
	}

	role, _ := claims["role"].(string)

	return AuthContext{
		UserId:        userId,
		Role:          role,
		Authenticated: true,
	}, nil
}

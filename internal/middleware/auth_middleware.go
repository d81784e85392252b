package middleware

import (
	"errors"
	"net/http"
	"strings"

	"upliftService/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the token payload accepted by the admin routes.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type errorResponse struct {
	Message string `json:"message"`
}

// AuthMiddleware validates an HS256 bearer token signed with secret.
// An empty secret disables the check.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid authorization format"})
			}

			claims, err := ParseToken(tokenParts[1], secret)
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusForbidden, errorResponse{Message: "Token expired"})
			}
			if err != nil {
				logger.Warn("Invalid admin token", "error", err)
				return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid token"})
			}

			c.Set("subject", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("role").(string)
			if !ok || strings.ToUpper(roleStr) != "ADMIN" {
				return c.JSON(http.StatusForbidden, errorResponse{Message: "Admin access required"})
			}
			return next(c)
		}
	}
}

// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// AdminClaims for admin session tokens
type AdminClaims struct {
	Email      string `json:"email"`
	AssignedBy string `json:"assignedBy"`
	jwt.StandardClaims
}

// Valid implements the Claims interface
func (c AdminClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateAdminToken issues a signed session token for an authenticated admin
func GenerateAdminToken(email, assignedBy string) (string, error) {
	claims := &AdminClaims{
		Email:      email,
		AssignedBy: assignedBy,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// AdminJWT guards admin routes. It expects a "Bearer <token>" Authorization
// header carrying a token issued by GenerateAdminToken.
func AdminJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed token")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(GetJWTSecret()), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			claims, ok := token.Claims.(*AdminClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
			}

			c.Set("adminEmail", claims.Email)
			return next(c)
		}
	}
}

// GetAdminEmail returns the authenticated admin's email from context
func GetAdminEmail(c echo.Context) string {
	if email, ok := c.Get("adminEmail").(string); ok {
		return email
	}
	return ""
}

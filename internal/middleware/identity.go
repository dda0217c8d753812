package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClientIdentity derives the rate-limit identity for a request. When the
// request carries a bearer token that verifies against the configured HS256
// secret, the token subject is used; it survives NAT and IP churn. Anything
// else falls back to the client network address. Identity derivation never
// rejects a request by itself.
func ClientIdentity(c *gin.Context, jwtSecret string) string {
	if jwtSecret == "" {
		return c.ClientIP()
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.ClientIP()
	}

	token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return c.ClientIP()
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return c.ClientIP()
	}

	return subject
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenRevoker reports whether a session token has been revoked.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// AuthMiddleware validates bearer tokens and puts the caller's identity
// into the request context under user_id, user_email and is_admin.
func AuthMiddleware(jwtSecret string, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
			c.Abort()
			return
		}

		jti, _ := claims["jti"].(string)
		if jti != "" && revoker != nil {
			if revoker.IsRevoked(c.Request.Context(), jti) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		email, _ := claims["email"].(string)
		isAdmin, _ := claims["admin"].(bool)

		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Set("is_admin", isAdmin)
		c.Set("token_jti", jti)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			c.Set("token_exp", exp.Time)
		}

		c.Next()
	}
}

// RequireAdmin rejects any caller whose token does not carry the admin
// claim. Must run after AuthMiddleware. Missing or malformed claims are
// treated as non-admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := c.Get("is_admin")
		if !ok || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's ID from the request context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/helper"
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

const identityKey = "identity"

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromHeader(c, secret)
		if err != nil {
			helper.SendError(c, err)
			c.Abort()
			return
		}
		if identity == nil {
			helper.SendError(c, apperrors.Unauthenticated("authentication required"))
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a bearer token when present and lets the
// request through as anonymous otherwise. A malformed token is still an error;
// silently downgrading it would mask client bugs.
func OptionalAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromHeader(c, secret)
		if err != nil {
			helper.SendError(c, err)
			c.Abort()
			return
		}
		if identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// RequireAdmin gates moderation routes. Runs after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAdmin() {
			helper.SendError(c, apperrors.Forbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, or nil for anonymous.
func IdentityFrom(c *gin.Context) *models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*models.Identity); ok {
			return identity
		}
	}
	return nil
}

func identityFromHeader(c *gin.Context, secret []byte) (*models.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, apperrors.Unauthenticated("bearer token required")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthenticated("invalid token")
	}

	return &models.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

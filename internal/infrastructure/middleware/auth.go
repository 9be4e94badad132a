package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/infrastructure/session"
	"github.com/leondli/gallery/pkg/jwt"
	"github.com/leondli/gallery/pkg/response"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccessTokenQuery carries the token for websocket upgrades, where browsers cannot set headers
	AccessTokenQuery = "access_token"
	// ContextUserID is the context key for user ID
	ContextUserID = "user_id"
	// ContextUsername is the context key for username
	ContextUsername = "username"
	// ContextEmail is the context key for email
	ContextEmail = "email"
)

// AuthMiddleware validates the bearer token and stores the caller's session
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("Token validation failed")
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Unauthorized(c, "token has expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)

		s := &entity.Session{User: entity.SessionUser{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		}}
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		if token := c.Query(AccessTokenQuery); token != "" {
			return token, ""
		}
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", "invalid authorization header format"
	}
	return strings.TrimPrefix(authHeader, BearerPrefix), ""
}

// GetUserID retrieves the user ID from context
func GetUserID(c *gin.Context) uuid.UUID {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil
	}
	id, _ := userID.(uuid.UUID)
	return id
}

// GetUsername retrieves the username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// GetEmail retrieves the email from context
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

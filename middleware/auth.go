package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// TokenParser resolves a session token to a user id.
type TokenParser interface {
	Parse(token string) (uint, error)
}

// UserFinder reloads the user behind a token.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticator validates tokens and loads the current user into the context.
type Authenticator struct {
	tokens TokenParser
	users  UserFinder
	log    *zap.Logger
}

func NewAuthenticator(tokens TokenParser, users UserFinder, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: logger.OrNop(log).Named("auth")}
}

// RequireAuth reads a bearer token from the Authorization header.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		a.authenticate(c, token)
	}
}

// WebSocketAuth reads the token from the "token" query parameter since
// browsers cannot set headers on websocket upgrades.
func (a *Authenticator) WebSocketAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.authenticate(c, c.Query("token"))
	}
}

func (a *Authenticator) authenticate(c *gin.Context, token string) {
	if token == "" {
		abort(c, http.StatusUnauthorized, "No authentication token, access denied")
		return
	}

	userID, err := a.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, services.ErrTokenExpired) {
			abort(c, http.StatusUnauthorized, "Token expired")
			return
		}
		a.log.Debug("token rejected", zap.Error(err))
		abort(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := a.users.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		abort(c, http.StatusUnauthorized, "Token is valid but user not found")
		return
	}

	c.Set(userKey, user)
	c.Set(userIDKey, user.ID)
	c.Next()
}

// RequireCapability must run after RequireAuth.
func RequireCapability(capability services.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !services.Can(CurrentUser(c), capability) {
			abort(c, http.StatusForbidden, "Access denied. Admin only.")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetCurrentUser stores user as the authenticated user.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(userIDKey, user.ID)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

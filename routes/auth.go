package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

type AuthHandler struct {
	auth *services.AuthService
	Responder
}

func NewAuthHandler(auth *services.AuthService, r Responder) *AuthHandler {
	return &AuthHandler{auth: auth, Responder: r}
}

// RegisterAuthRoutes mounts /auth. limiter guards the credential endpoints.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, requireAuth, limiter gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", limiter, h.register)
		auth.POST("/login", limiter, h.login)
		auth.POST("/forgot-password", limiter, h.forgotPassword)
		auth.POST("/reset-password/:token", limiter, h.resetPassword)

		auth.GET("/profile", requireAuth, h.profile)
		auth.PUT("/profile", requireAuth, h.updateProfile)
		auth.PUT("/profile/password", requireAuth, h.changePassword)
	}
}

func (h *AuthHandler) register(c *gin.Context) {
	var in models.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	res, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) login(c *gin.Context) {
	var in models.LoginInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) profile(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c).Public())
}

func (h *AuthHandler) updateProfile(c *gin.Context) {
	var in models.ProfileInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	view, err := h.auth.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	var in models.PasswordChangeInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), in); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Password updated successfully", nil)
}

func (h *AuthHandler) forgotPassword(c *gin.Context) {
	var in models.ForgotPasswordInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Password reset email sent", nil)
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	var in models.ResetPasswordInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), in.Password); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Password has been reset successfully", nil)
}

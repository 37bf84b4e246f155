package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/types"
)

// Responder writes service errors as JSON. Outside production, server errors
// also carry the wrapped error chain.
type Responder struct {
	production bool
	log        *zap.Logger
}

func NewResponder(production bool, log *zap.Logger) Responder {
	return Responder{production: production, log: logger.OrNop(log).Named("http")}
}

func statusFor(kind types.ErrorKind) int {
	switch kind {
	case types.KindUnauthenticated:
		return http.StatusUnauthorized
	case types.KindForbidden:
		return http.StatusForbidden
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (r Responder) Error(c *gin.Context, err error) {
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.Internal("Server error", err)
	}

	status := statusFor(appErr.Kind)
	body := gin.H{"message": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	if status == http.StatusInternalServerError {
		r.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		if !r.production && appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// Message writes {"message": msg} plus any extra fields.
func (r Responder) Message(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.FieldError(name, "Invalid "+name)
	}
	return uint(id), nil
}

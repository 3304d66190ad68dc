package handler

import (
	"errors"
	"net/http"

	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps the error taxonomy onto HTTP. Internal errors are logged
// and returned without detail.
func writeError(c *gin.Context, err error) {
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		ae = &apperr.AppError{Code: apperr.CodeInternal, Message: "internal error", Cause: err}
	}

	status := http.StatusInternalServerError
	switch ae.Code {
	case apperr.CodeValidation:
		status = http.StatusBadRequest
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodeForbidden:
		status = http.StatusForbidden
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		pkg.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": string(apperr.CodeInternal), "msg": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": string(ae.Code), "msg": ae.Message})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": string(apperr.CodeValidation), "msg": "invalid params"})
}

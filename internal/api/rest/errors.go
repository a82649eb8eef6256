package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/world-conquest/internal/api/shared/errors"
	"github.com/feral-file/world-conquest/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondError maps an executor error to its status and logs server side failures
func respondError(c *gin.Context, err error, message string) {
	status, apiErr := apierrors.FromDomainError(err, message)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		)
	}
	c.JSON(status, apiErr)
}

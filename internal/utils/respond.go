package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/logging"
)

// HandleSuccess sends a 200 envelope around data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleCreated sends a 201 envelope around data
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

// HandleNoContent answers 204 without a body
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleAPIError logs the failure and aborts with an error envelope.
// err is exposed as details outside release mode only.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logHTTPError(c, status, message, err)

	var errorDetails interface{}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, errorDetails))
}

// HandleSubmissionError aborts with an error envelope whose details carry the
// final form status, so a client can still render the banner. The message
// is user-facing and shown in every mode.
func HandleSubmissionError(c *gin.Context, status int, code common.ErrorCode, message string, details interface{}) {
	logHTTPError(c, status, message, nil)
	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, details))
}

// HandleValidationError responds 400 with per-field details. Field details
// are never sensitive, so they are returned in every mode.
func HandleValidationError(c *gin.Context, message string, details interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, message, details))
}

func logHTTPError(c *gin.Context, status int, message string, err error) {
	logging.GetGlobalLogger().LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)
}

package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope every failed request gets.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler writes an error to a gin response. With Debug off,
// 5xx details are replaced by a generic message so internal structure
// does not leak to clients.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error())
		if !h.Debug {
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

var defaultHandler = &GinErrorHandler{Debug: false}

// SetDebug controls whether 5xx responses include the underlying message.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleError is the helper handlers call on any service error.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

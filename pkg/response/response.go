package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error shape every endpoint returns.
type ErrorBody struct {
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success writes body with message merged in. A nil body yields {message}.
func Success(ctx *gin.Context, status int, message string, body gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	if body == nil {
		body = gin.H{}
	}
	if message != "" {
		body["message"] = message
	}
	if rid := ctx.GetString("request_id"); rid != "" {
		body["request_id"] = rid
	}
	ctx.JSON(status, body)
}

// Error writes the error shape and returns it.
func Error(ctx *gin.Context, status int, message string, err interface{}) ErrorBody {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{
		Message:   message,
		Error:     err,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.JSON(status, body)
	return body
}

// Abort writes the error shape and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	Error(ctx, status, message, err)
	ctx.Abort()
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/response"
	"github.com/raushan165/Taskpilot/pkg/validation"
)

// faults writes 500 responses. The underlying error text is only
// returned to clients when Expose is set (development).
type faults struct {
	Logger logrus.FieldLogger
	Expose bool
}

func (f faults) serverError(c *gin.Context, err error) {
	if f.Logger != nil {
		f.Logger.WithError(err).
			WithField("path", c.FullPath()).
			WithField("request_id", c.GetString("request_id")).
			Error("request failed")
	}
	var detail interface{}
	if f.Expose {
		detail = err.Error()
	}
	response.Error(c, http.StatusInternalServerError, "Server Error", detail)
}

func badPayload(c *gin.Context, err error) {
	details := validation.ToDetails(err)
	response.Error(c, http.StatusBadRequest, validation.Summary(details), details)
}

// withMeta attaches the caller's address and agent for outgoing mail.
func withMeta(c *gin.Context) *gin.Context {
	ctx := application.WithRequestMeta(c.Request.Context(), application.RequestMeta{
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	c.Request = c.Request.WithContext(ctx)
	return c
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

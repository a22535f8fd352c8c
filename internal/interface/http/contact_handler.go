package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
	"github.com/raushan165/Taskpilot/pkg/response"
)

type ContactHandler struct {
	Svc *application.ContactService
	faults
}

func NewContactHandler(svc *application.ContactService, logger logrus.FieldLogger, exposeErrors bool) *ContactHandler {
	return &ContactHandler{Svc: svc, faults: faults{Logger: logger, Expose: exposeErrors}}
}

type contactRequest struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Subject  string              `json:"subject"`
	Message  string              `json:"message"`
	Services entity.ServiceFlags `json:"services"`
}

// Submit POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	m, err := h.Svc.Submit(c.Request.Context(), application.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Services: req.Services,
	})
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "Name, email and message are required", nil)
			return
		}
		h.serverError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent successfully", gin.H{"data": m})
}

// Search GET /api/contact/search?q=&size= (bearer)
func (h *ContactHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	results, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.serverError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"data": results})
}

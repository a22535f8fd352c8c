package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/pkg/response"
)

const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	Svc *application.ProfileService
	faults
}

func NewProfileHandler(svc *application.ProfileService, logger logrus.FieldLogger, exposeErrors bool) *ProfileHandler {
	return &ProfileHandler{Svc: svc, faults: faults{Logger: logger, Expose: exposeErrors}}
}

type updateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

func (h *ProfileHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, "avatar uploads are not configured", nil)
	default:
		h.serverError(c, err)
	}
}

// GetProfile GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "profile", gin.H{"user": u})
}

// UpdateProfile PUT /api/profile {name?, avatar_url?}
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), userID(c), application.UpdateProfileInput{Name: req.Name, AvatarURL: req.AvatarURL})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "profile updated", gin.H{"user": u})
}

// UploadAvatar POST /api/profile/avatar (multipart field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error(c, http.StatusBadRequest, "avatar must be at most 5MB", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, "avatar must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.serverError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), userID(c), f, fh.Filename, contentType)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "avatar updated", gin.H{"user": u})
}

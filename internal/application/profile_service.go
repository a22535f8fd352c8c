package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
	repo "github.com/raushan165/Taskpilot/internal/domain/repository"
)

type ProfileService struct {
	Repo    repo.UserRepository
	Objects ObjectStore // optional; avatar uploads fail without it
	Logger  logrus.FieldLogger
}

func NewProfileService(r repo.UserRepository, objects ObjectStore, logger logrus.FieldLogger) *ProfileService {
	return &ProfileService{Repo: r, Objects: objects, Logger: logger}
}

type UpdateProfileInput struct {
	Name      string
	AvatarURL string
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes only the non-empty fields of in.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the image under avatars/<uid>/ and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Objects == nil {
		return nil, ErrStorageDisabled
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := s.Objects.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).WithField("object", objectPath).Info("avatar updated")
	}
	return u, nil
}

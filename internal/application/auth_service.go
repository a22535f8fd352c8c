package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/raushan165/Taskpilot/config"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
	repo "github.com/raushan165/Taskpilot/internal/domain/repository"
	"github.com/raushan165/Taskpilot/pkg/helpers"
	mailtpl "github.com/raushan165/Taskpilot/pkg/mailer/templates"
)

// AuthService runs the account flows. Every call is a self-contained
// transaction; continuity between steps is carried by the client.
type AuthService struct {
	Users    repo.UserRepository
	OTPs     repo.OTPStore
	Notifier Notifier
	Identity IdentityVerifier
	Tokens   TokenIssuer
	Cfg      *config.Config
	Logger   logrus.FieldLogger

	genCode func() (string, error)
}

func NewAuthService(users repo.UserRepository, otps repo.OTPStore, notifier Notifier, identity IdentityVerifier, tokens TokenIssuer, cfg *config.Config, logger logrus.FieldLogger) *AuthService {
	return &AuthService{
		Users:    users,
		OTPs:     otps,
		Notifier: notifier,
		Identity: identity,
		Tokens:   tokens,
		Cfg:      cfg,
		Logger:   logger,
		genCode:  helpers.GenOTPCode,
	}
}

// Session is the result of a successful authentication.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

type VerifySignupInput struct {
	Name     string
	Email    string
	Code     string
	Password string
}

type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// RequestSignup sends a verification code to an unregistered email.
func (s *AuthService) RequestSignup(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrValidation
	}
	_, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrUserExists
	case !errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}
	return s.issueCode(ctx, email, "", entity.PurposeVerification)
}

// VerifySignup consumes the verification code and creates the account.
func (s *AuthService) VerifySignup(ctx context.Context, in VerifySignupInput) (*entity.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Code == "" || in.Password == "" {
		return nil, ErrValidation
	}
	if err := s.checkCode(ctx, in.Email, in.Code, entity.PurposeVerification); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: in.Email, Name: in.Name, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	s.consume(ctx, in.Email)
	signups.Add(1)
	helpers.LogInfo(s.Logger, "user signed up", logrus.Fields{"user_id": u.ID})
	return u, nil
}

// Login checks a password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !u.HasPassword() || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, err
	}
	logins.Add(1)
	return sess, nil
}

// ForgotPassword sends a reset code to an existing account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrValidation
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return s.issueCode(ctx, u.Email, u.Name, entity.PurposeReset)
}

// ResetPassword consumes a reset code and replaces the password hash.
// No session is issued.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Code == "" || in.NewPassword == "" {
		return ErrValidation
	}
	if err := s.checkCode(ctx, in.Email, in.Code, entity.PurposeReset); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.consume(ctx, in.Email)
	passwordResets.Add(1)
	helpers.LogInfo(s.Logger, "password reset", logrus.Fields{"user_id": u.ID})
	return nil
}

// GoogleLogin verifies a federated identity token, finding or creating the user.
func (s *AuthService) GoogleLogin(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrValidation
	}
	id, err := s.Identity.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederatedAuth, err)
	}
	email := normalizeEmail(id.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: token carries no email", ErrFederatedAuth)
	}

	u, err := s.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		u = &entity.User{Email: email, Name: id.Name, AvatarURL: id.Picture}
		if err := s.Users.Create(ctx, u); err != nil {
			if !errors.Is(err, repo.ErrDuplicate) {
				return nil, err
			}
			// lost a creation race; the other request's row wins
			if u, err = s.Users.GetByEmail(ctx, email); err != nil {
				return nil, fmt.Errorf("lookup user: %w", err)
			}
		}
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, err
	}
	federatedLogins.Add(1)
	return sess, nil
}

// Me returns the account behind a session token subject.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) issueSession(u *entity.User) (*Session, error) {
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) issueCode(ctx context.Context, email, name string, purpose entity.OTPPurpose) error {
	code, err := s.genCode()
	if err != nil {
		return err
	}
	if err := s.OTPs.Save(ctx, entity.OTP{Email: email, Code: code, Purpose: purpose, CreatedAt: time.Now().UTC()}); err != nil {
		return err
	}

	meta := requestMeta(ctx)
	opts := []mailtpl.Option{
		mailtpl.WithTime(time.Now()),
		mailtpl.WithIP(meta.IP),
		mailtpl.WithUserAgent(meta.UserAgent),
	}
	if s.Cfg != nil {
		opts = append(opts, mailtpl.WithExpiresIn(s.Cfg.OTPTTL))
	}
	var data map[string]any
	if purpose == entity.PurposeReset {
		data = mailtpl.NewResetData(s.Cfg, name, email, code, opts...)
	} else {
		data = mailtpl.NewVerificationData(s.Cfg, email, code, opts...)
	}
	if err := s.Notifier.Send(ctx, email, string(purpose), data); err != nil {
		return fmt.Errorf("send %s code: %w", purpose, err)
	}
	otpIssued.Add(1)
	return nil
}

// hashPassword reports passwords bcrypt cannot take as ErrValidation.
func hashPassword(plain string) (string, error) {
	hash, err := helpers.HashPassword(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than %d bytes", ErrValidation, helpers.MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *AuthService) checkCode(ctx context.Context, email, code string, purpose entity.OTPPurpose) error {
	ok, err := s.OTPs.Match(ctx, email, code, purpose)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}
	return nil
}

// consume deletes every code for email. The account change already
// happened, so a failure here is logged rather than returned.
func (s *AuthService) consume(ctx context.Context, email string) {
	if err := s.OTPs.DeleteAll(ctx, email); err != nil {
		helpers.LogError(s.Logger, "delete otp failed", err, logrus.Fields{"email": email})
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
	"ceylon-compass-server/utils"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
	minPasswordLen  = 6
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

type AuthService struct {
	users       repositories.UserRepository
	tokens      *TokenService
	mailer      Mailer
	frontendURL string
	now         func() time.Time
	log         *zap.Logger
}

func NewAuthService(users repositories.UserRepository, tokens *TokenService, mailer Mailer, frontendURL string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		now:         time.Now,
		log:         logger.OrNop(log).Named("auth"),
	}
}

func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, types.Internal("Server error", err)
	}
	if taken {
		return nil, types.FieldError("username", "Username already exists")
	}
	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, types.Internal("Server error", err)
	}
	if taken {
		return nil, types.FieldError("email", "Email already exists")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, types.Internal("Server error", err)
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Country:      strings.TrimSpace(in.Country),
		City:         strings.TrimSpace(in.City),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, types.Internal("Server error", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*AuthResult, error) {
	identifier := strings.TrimSpace(in.UsernameOrEmail)
	if identifier == "" {
		return nil, types.FieldError("usernameOrEmail", "Username/email and password are required")
	}
	if in.Password == "" {
		return nil, types.FieldError("password", "Username/email and password are required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.FieldError("usernameOrEmail", "No account found with that username or email")
		}
		return nil, types.Internal("Server error", err)
	}
	if !utils.CheckPasswordHash(in.Password, user.PasswordHash) {
		s.log.Info("login rejected", zap.Uint("user_id", user.ID))
		return nil, types.FieldError("password", "Incorrect password")
	}
	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, types.Internal("Server error", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// UpdateProfile changes country, city and email. Empty values are ignored.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, in models.ProfileInput) (*models.UserView, error) {
	if in.Country != nil && *in.Country != "" {
		user.Country = strings.TrimSpace(*in.Country)
	}
	if in.City != nil && *in.City != "" {
		user.City = strings.TrimSpace(*in.City)
	}
	if in.Email != nil && *in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, types.Internal("Server error", err)
			}
			if taken {
				return nil, types.FieldError("email", "Email already exists")
			}
			user.Email = email
		}
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, types.Internal("Server error", err)
	}
	view := user.Public()
	return &view, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, in models.PasswordChangeInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return types.Validation("Both current and new passwords are required")
	}
	if len(in.NewPassword) < minPasswordLen {
		return types.FieldError("newPassword", "New password must be at least 6 characters long")
	}
	if !utils.CheckPasswordHash(in.CurrentPassword, user.PasswordHash) {
		return types.FieldError("currentPassword", "Current password is incorrect")
	}
	if err := s.setPassword(ctx, user, in.NewPassword); err != nil {
		return types.Internal("Failed to update password", err)
	}
	s.log.Info("password changed", zap.Uint("user_id", user.ID))
	return nil
}

// ForgotPassword stores a one hour reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return types.NotFound("No account found with that email")
		}
		return types.Internal("Server error", err)
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return types.Internal("Server error", err)
	}
	expires := s.now().Add(resetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.users.Save(ctx, user); err != nil {
		return types.Internal("Server error", err)
	}

	msg, err := resetPasswordEmail(user.Email, s.frontendURL+"/reset-password/"+token)
	if err != nil {
		return types.Internal("Failed to send reset email", err)
	}
	if _, err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("reset email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return types.Internal("Failed to send reset email", err)
	}
	s.log.Info("reset email sent", zap.Uint("user_id", user.ID))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLen {
		return types.FieldError("password", "Password must be at least 6 characters long")
	}
	user, err := s.users.FindByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return types.Validation("Invalid or expired reset token")
		}
		return types.Internal("Server error", err)
	}

	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.setPassword(ctx, user, password); err != nil {
		return types.Internal("Server error", err)
	}
	s.log.Info("password reset", zap.Uint("user_id", user.ID))
	return nil
}

func (s *AuthService) setPassword(ctx context.Context, user *models.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Save(ctx, user)
}

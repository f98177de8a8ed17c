package services

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/pensacomp/lms-service/internal/auth"
	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	sessions  *cache.SessionStore
	mailer    mail.Mailer
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	sessions *cache.SessionStore,
	mailer mail.Mailer,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		sessions:  sessions,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Register validates the proposed account, mails a 4-digit activation code
// and returns the activation token the client must echo back. No user row
// is created until activation.
func (s *userService) Register(ctx context.Context, req *validator.RegistrationRequest) (*RegistrationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError(err)
	}

	token, code, err := s.tokens.NewActivationToken(auth.PendingUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	})
	if err != nil {
		return nil, NewInternalError(err)
	}

	if err := s.mailer.Send(mail.ActivationMail(req.Email, req.Name, code)); err != nil {
		s.logger.Error("failed to send activation mail", "email", req.Email, "error", err)
		return nil, NewInternalError(err)
	}

	s.logger.Info("registration started", "email", req.Email)
	return &RegistrationResult{ActivationToken: token}, nil
}

// Activate verifies the token and code pair and creates the user account.
func (s *userService) Activate(ctx context.Context, req *validator.ActivationRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	pending, code, err := s.tokens.VerifyActivationToken(req.ActivationToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if code != req.ActivationCode {
		return nil, ErrInvalidActivation
	}

	// The email may have been claimed between registration and activation.
	exists, err := s.repo.User().ExistsByEmail(ctx, pending.Email)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	user := &models.User{
		Name:       pending.Name,
		Email:      pending.Email,
		Password:   pending.Password,
		Role:       models.RoleUser,
		IsVerified: true,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, NewInternalError(err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.TypeUserActivated, events.UserActivatedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}))

	s.logger.Info("user activated", "user_id", user.ID)
	return user, nil
}

// Login checks credentials and opens a session: a signed token pair plus
// the redis mirror the auth middleware reads.
func (s *userService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, *AuthTokens, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, nil, NewValidationError(err)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, NewInternalError(err)
	}

	if user.Password == "" {
		// Social-auth accounts have no password to check.
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, tokens, nil
}

// SocialAuth logs in an externally authenticated identity, creating the
// account on first sight. Social accounts are verified by construction and
// carry no password.
func (s *userService) SocialAuth(ctx context.Context, req *validator.SocialAuthRequest) (*models.User, *AuthTokens, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, nil, NewValidationError(err)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, NewInternalError(err)
		}

		user = &models.User{
			Name:       req.Name,
			Email:      req.Email,
			Avatar:     models.Media{URL: req.Avatar},
			Role:       models.RoleUser,
			IsVerified: true,
		}
		if err := s.repo.User().Create(ctx, user); err != nil {
			return nil, nil, NewInternalError(err)
		}
		s.logger.Info("social account created", "user_id", user.ID)
	}

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh rotates the token pair. The session mirror must still exist:
// a logout or mirror expiry invalidates otherwise-valid refresh tokens.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*models.User, *AuthTokens, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrTokenInvalid
	}

	user, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, nil, ErrSessionExpired
		}
		if errors.Is(err, cache.ErrCacheNotAvailable) {
			// No mirror configured, fall back to the database.
			user, err = s.repo.User().GetByID(ctx, userID)
			if err != nil {
				return nil, nil, ErrSessionExpired
			}
		} else {
			return nil, nil, NewInternalError(err)
		}
	}

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout revokes the session mirror.
func (s *userService) Logout(ctx context.Context, userID uint) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return NewInternalError(err)
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

func (s *userService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, NewInternalError(err)
	}
	return user, nil
}

func (s *userService) UpdateInfo(ctx context.Context, userID uint, req *validator.UpdateUserInfoRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	return s.saveAndMirror(ctx, user)
}

func (s *userService) UpdatePassword(ctx context.Context, userID uint, req *validator.UpdatePasswordRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Password == "" {
		return nil, ErrPasswordlessUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return nil, ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError(err)
	}
	user.Password = string(hash)

	return s.saveAndMirror(ctx, user)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint, req *validator.UpdateAvatarRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = req.Avatar

	return s.saveAndMirror(ctx, user)
}

// openSession issues the token pair and writes the session mirror. Mirror
// write failures are logged but do not fail the login.
func (s *userService) openSession(ctx context.Context, user *models.User) (*AuthTokens, error) {
	access, err := s.tokens.SignAccessToken(user.ID)
	if err != nil {
		return nil, NewInternalError(err)
	}
	refresh, err := s.tokens.SignRefreshToken(user.ID)
	if err != nil {
		return nil, NewInternalError(err)
	}

	if err := s.sessions.Set(ctx, user); err != nil {
		s.logger.Warn("failed to write session mirror", "user_id", user.ID, "error", err)
	}

	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// saveAndMirror persists the user and refreshes the session mirror so the
// change is visible to the auth middleware immediately.
func (s *userService) saveAndMirror(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.repo.User().Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, NewInternalError(err)
	}

	if err := s.sessions.Set(ctx, user); err != nil {
		s.logger.Warn("failed to refresh session mirror", "user_id", user.ID, "error", err)
	}

	return user, nil
}

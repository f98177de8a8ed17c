package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
	"github.com/pensacomp/lms-service/internal/validator"
)

type stubUserService struct {
	registerResult *services.RegistrationResult
	registerErr    error
	loginUser      *models.User
	loginTokens    *services.AuthTokens
	loginErr       error
	refreshErr     error
}

func (s *stubUserService) Register(ctx context.Context, req *validator.RegistrationRequest) (*services.RegistrationResult, error) {
	return s.registerResult, s.registerErr
}
func (s *stubUserService) Activate(ctx context.Context, req *validator.ActivationRequest) (*models.User, error) {
	return nil, services.ErrInvalidActivation
}
func (s *stubUserService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, *services.AuthTokens, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return s.loginUser, s.loginTokens, nil
}
func (s *stubUserService) SocialAuth(ctx context.Context, req *validator.SocialAuthRequest) (*models.User, *services.AuthTokens, error) {
	return s.loginUser, s.loginTokens, nil
}
func (s *stubUserService) Refresh(ctx context.Context, refreshToken string) (*models.User, *services.AuthTokens, error) {
	if s.refreshErr != nil {
		return nil, nil, s.refreshErr
	}
	return s.loginUser, s.loginTokens, nil
}
func (s *stubUserService) Logout(ctx context.Context, userID uint) error { return nil }
func (s *stubUserService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.loginUser, nil
}
func (s *stubUserService) UpdateInfo(ctx context.Context, userID uint, req *validator.UpdateUserInfoRequest) (*models.User, error) {
	return s.loginUser, nil
}
func (s *stubUserService) UpdatePassword(ctx context.Context, userID uint, req *validator.UpdatePasswordRequest) (*models.User, error) {
	return s.loginUser, nil
}
func (s *stubUserService) UpdateAvatar(ctx context.Context, userID uint, req *validator.UpdateAvatarRequest) (*models.User, error) {
	return s.loginUser, nil
}

func newUserHandlerRouter(svc services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewUserHandler(svc, CookieConfig{
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 72 * time.Hour,
	}, logger)

	router := gin.New()
	router.POST("/registration", handler.Registration)
	router.POST("/activate-user", handler.ActivateUser)
	router.POST("/login", handler.Login)
	router.GET("/refresh", handler.RefreshToken)
	return router
}

func TestRegistrationReturnsActivationToken(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{
		registerResult: &services.RegistrationResult{ActivationToken: "signed-token"},
	})

	body := `{"name":"Alice","email":"alice@example.com","password":"s3cretpass"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

func TestRegistrationRejectsMalformedPayload(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{registerErr: services.ErrEmailExists})

	body := `{"name":"Alice","email":"alice@example.com","password":"s3cretpass"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email já existe")
}

func TestLoginSetsSessionCookies(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{
		loginUser:   &models.User{ID: 1, Email: "alice@example.com"},
		loginTokens: &services.AuthTokens{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
	})

	body := `{"email":"alice@example.com","password":"s3cretpass"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	byName := make(map[string]*http.Cookie, len(cookies))
	for _, c := range cookies {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "access_token")
	require.Contains(t, byName, "refresh_token")
	assert.Equal(t, "access-jwt", byName["access_token"].Value)
	assert.Equal(t, "refresh-jwt", byName["refresh_token"].Value)
	assert.True(t, byName["access_token"].HttpOnly)
	assert.Equal(t, int((5 * time.Minute).Seconds()), byName["access_token"].MaxAge)
	assert.Equal(t, int((72 * time.Hour).Seconds()), byName["refresh_token"].MaxAge)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{loginErr: services.ErrInvalidCredentials})

	body := `{"email":"alice@example.com","password":"wrong-pass"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email ou senha inválidos")
	assert.Empty(t, w.Result().Cookies())
}

func TestActivateUserWrongCode(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{})

	body := `{"activation_token":"signed-token","activation_code":"0000"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activate-user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Código de ativação inválido")
}

func TestRefreshWithoutCookie(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Sessão expirada")
}

func TestRefreshRotatesCookies(t *testing.T) {
	router := newUserHandlerRouter(&stubUserService{
		loginUser:   &models.User{ID: 1, Email: "alice@example.com"},
		loginTokens: &services.AuthTokens{AccessToken: "new-access", RefreshToken: "new-refresh"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			found = true
			assert.Equal(t, "new-refresh", c.Value)
		}
	}
	assert.True(t, found)
}

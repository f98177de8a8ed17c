package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
	"github.com/pensacomp/lms-service/internal/validator"
)

// CookieConfig controls how session cookies are written.
type CookieConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

type UserHandler struct {
	BaseHandler
	userService services.UserService
	cookies     CookieConfig
}

func NewUserHandler(userService services.UserService, cookies CookieConfig, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
		cookies:     cookies,
	}
}

// Registration starts account creation
// @Summary Register a new user
// @Description Validates the account data and mails a 4-digit activation code
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body validator.RegistrationRequest true "Account data"
// @Success 201 {object} SuccessResponse{data=services.RegistrationResult}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /registration [post]
func (h *UserHandler) Registration(c *gin.Context) {
	var req validator.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Verifique seu email para ativar a conta",
		Data:    result,
	})
}

// ActivateUser confirms the activation token and code pair
// @Summary Activate a registered account
// @Tags auth
// @Accept json
// @Produce json
// @Param activation body validator.ActivationRequest true "Activation token and code"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /activate-user [post]
func (h *UserHandler) ActivateUser(c *gin.Context) {
	var req validator.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Conta ativada com sucesso",
		Data:    user,
	})
}

// Login authenticates with email and password
// @Summary Log in
// @Description Returns the user and sets the access/refresh token cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body validator.LoginRequest true "Credentials"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, tokens, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookies(c, tokens)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": user, "accessToken": tokens.AccessToken},
	})
}

// SocialAuth logs in an externally authenticated identity
// @Summary Social login
// @Tags auth
// @Accept json
// @Produce json
// @Param identity body validator.SocialAuthRequest true "External identity"
// @Success 200 {object} SuccessResponse
// @Router /social-auth [post]
func (h *UserHandler) SocialAuth(c *gin.Context) {
	var req validator.SocialAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, tokens, err := h.userService.SocialAuth(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookies(c, tokens)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": user, "accessToken": tokens.AccessToken},
	})
}

// RefreshToken rotates the session token pair
// @Summary Refresh the session
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /refresh [get]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	refresh, err := c.Cookie(refreshTokenCookie)
	if err != nil || refresh == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Sessão expirada, faça login novamente",
		})
		return
	}

	user, tokens, err := h.userService.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookies(c, tokens)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": user, "accessToken": tokens.AccessToken},
	})
}

// Logout revokes the session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /logout [get]
func (h *UserHandler) Logout(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	if err := h.userService.Logout(c.Request.Context(), user.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Logout realizado com sucesso",
	})
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: user})
}

// UpdateUserInfo updates profile fields
func (h *UserHandler) UpdateUserInfo(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	var req validator.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.userService.UpdateInfo(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: updated})
}

// UpdatePassword changes the account password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	var req validator.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.userService.UpdatePassword(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: updated})
}

// UpdateAvatar replaces the profile picture reference
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	var req validator.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.userService.UpdateAvatar(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: updated})
}

func (h *UserHandler) setSessionCookies(c *gin.Context, tokens *services.AuthTokens) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, tokens.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, tokens.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *UserHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
}

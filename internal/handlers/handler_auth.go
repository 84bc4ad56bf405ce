package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/finzen-app/finzen_backend/internal/middleware"
	"github.com/finzen-app/finzen_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles authentication related requests.
type authHandler struct {
	userService     portssvc.UserSvcFacade
	identityGateway portssvc.IdentityGatewaySvcFacade
	cfg             *config.Config
}

func newAuthHandler(us portssvc.UserSvcFacade, ig portssvc.IdentityGatewaySvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:     us,
		identityGateway: ig,
		cfg:             cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.IdentityGateway, cfg)

	// 5 requests per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limited := middleware.RateLimit(ipLimiter)

	r.GET("/login", h.loginForm)
	r.POST("/login", limited, h.login)
	r.POST("/auth/google", limited, h.googleLogin)
	r.POST("/auth/google/exchange-code", limited, h.googleExchangeCode)
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/logout", h.logout)
}

// redirectForRole picks the landing page after a successful login.
func redirectForRole(role domain.UserRole) string {
	if role == domain.RoleAdmin {
		return "/dashboard"
	}
	return "/index"
}

// setSessionCookie attaches the signed session token to the response.
func (h *authHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.cfg.SessionCookieName,
		token,
		int(h.cfg.SessionExpiryDuration.Seconds()),
		"/",
		"",
		h.cfg.IsProduction,
		true, // httpOnly
	)
}

// loginForm godoc
// @Summary Login page data
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /login [get]
func (h *authHandler) loginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// registerForm godoc
// @Summary Registration page data
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /register [get]
func (h *authHandler) registerForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

// login godoc
// @Summary User login
// @Description Validates credentials, sets the session cookie and redirects by role.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.LoginName == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
		return
	}

	user, err := h.userService.ValidateCredentials(c.Request.Context(), req.LoginName, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid login name or password"})
			return
		}
		logger.Error("Credential validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error. Please try again."})
		return
	}

	token, err := h.identityGateway.IssueSession(domain.SessionIdentity{
		UserID:      user.UserID,
		Role:        user.Role,
		DisplayName: user.Name,
	})
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate session"})
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, redirectForRole(user.Role))
}

// googleLogin godoc
// @Summary Login with a Google ID token
// @Description Verifies the posted ID token, creates or links the account and returns the session token with a role-based redirect.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.GoogleLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ID token required"})
		return
	}

	h.completeExternalLogin(c, req.IDToken)
}

// googleExchangeCode godoc
// @Summary Login with a Google authorization code
// @Description Exchanges the authorization code server-side, then follows the same verification path as the ID-token login.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.GoogleLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *authHandler) googleExchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code required"})
		return
	}

	rawIDToken, err := h.identityGateway.ExchangeCodeForIDToken(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredential) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
			return
		}
		logger.Error("Code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Authentication failed. Please try again."})
		return
	}

	h.completeExternalLogin(c, rawIDToken)
}

// completeExternalLogin is the shared tail of both Google login variants:
// verify the assertion, find/link/create the account, issue the session.
func (h *authHandler) completeExternalLogin(c *gin.Context, rawIDToken string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, err := h.identityGateway.VerifyGoogleIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		logger.Warn("Google ID token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication failed"})
		return
	}

	user, err := h.userService.CreateFromExternal(c.Request.Context(), *identity)
	if err != nil {
		logger.Error("Failed to resolve external user", slog.String("error", err.Error()), slog.String("subject", identity.SubjectID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Authentication failed. Please try again."})
		return
	}

	token, err := h.identityGateway.IssueSession(domain.SessionIdentity{
		UserID:      user.UserID,
		Role:        user.Role,
		DisplayName: user.Name,
	})
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate session"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.GoogleLoginResponse{
		Success:  true,
		Token:    token,
		Redirect: redirectForRole(user.Role),
	})
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and redirects to the login page.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Login name already taken"
// @Router /register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Login name already taken. Try another one."})
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// logout godoc
// @Summary Logout
// @Description Clears the session cookie and redirects to the login page.
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *authHandler) logout(c *gin.Context) {
	// No server-side revocation list; clearing the cookie is the whole logout.
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusFound, "/login")
}

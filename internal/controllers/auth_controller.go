package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/middleware"
	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

type AuthController struct {
	authService  service.AuthService
	cookieSecure bool
}

func NewAuthController(authService service.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ac.cookieSecure, true)
}

// Signup handles POST /api/v1/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	if _, err := ac.authService.Signup(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{
		Success: true,
		Message: "Account created successfully! Please login.",
	})
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	user, session, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setSessionCookie(c, session.Token, int(time.Until(session.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, models.LoginResponse{
		Success:   true,
		Message:   "Logged in successfully!",
		Username:  user.Username,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles POST /api/v1/auth/logout. It succeeds even without a session.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.authService.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		respondError(c, err)
		return
	}

	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Logged out successfully!"})
}

// CheckAuth handles GET /api/v1/auth/check-auth
func (ac *AuthController) CheckAuth(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusOK, models.CheckAuthResponse{LoggedIn: false})
		return
	}
	c.JSON(http.StatusOK, models.CheckAuthResponse{LoggedIn: true, Username: c.GetString(middleware.ContextUsername)})
}

// DeleteAccount handles DELETE /api/v1/auth/account; the user's mappings go with it
func (ac *AuthController) DeleteAccount(c *gin.Context) {
	if err := ac.authService.DeleteAccount(c.Request.Context(), middleware.Claims(c)); err != nil {
		respondError(c, err)
		return
	}

	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Account deleted successfully"})
}

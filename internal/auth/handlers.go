package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	// Already signed in users go straight to the landing page
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":     "Login",
		"Username":  "",
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		// Same message whether the user is unknown or the password is
		// wrong, so responses cannot enumerate accounts.
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title":     "Login",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Invalid Credentials. Please try again.",
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title":     "Login",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Failed to create session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/search")
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":     "Register",
		"Username":  "",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	_, err := ac.service.Register(username, password, confirm)
	if err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Title":     "Register",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     registrationErrorMessage(err),
		})
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":     "Register",
		"Username":  "",
		"CSRFToken": GetCSRFToken(c),
		"Msg":       "Thanks for registering!",
	})
}

// Logout destroys the session and redirects home. Logging out without a
// session is a no-op.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	c.Redirect(http.StatusFound, "/")
}

func registrationErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return "Username taken. Please choose another."
	case errors.Is(err, ErrPasswordMismatch):
		return "Both password fields must match."
	case errors.Is(err, ErrUsernameRequired), errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrUsernameInvalid):
		return err.Error()
	default:
		return "Registration failed. Please try again."
	}
}

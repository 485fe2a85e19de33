package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/web/middleware"
)

type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" binding:"required,email,max=120"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}

type ResetRequestForm struct {
	Email string `form:"email" binding:"required,email"`
}

type ResetPasswordForm struct {
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// ShowRegister handles GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	render(c, http.StatusOK, "register", gin.H{"Title": "Register", "Form": RegisterForm{}})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register", gin.H{
			"Title":  "Register",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if errs := duplicateFieldErrors(err); errs != nil {
		render(c, http.StatusBadRequest, "register", gin.H{
			"Title":  "Register",
			"Form":   form,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		renderServerError(c)
		return
	}

	flash(c, "success", "Your account has been created! You are now able to log in")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	render(c, http.StatusOK, "login", gin.H{
		"Title": "Login",
		"Form":  LoginForm{},
		"Next":  safeNext(c.Query("next")),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login", gin.H{
			"Title":  "Login",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		// One generic message for unknown email and wrong password
		// alike, shown inline on this response rather than queued for
		// the next page.
		render(c, http.StatusUnauthorized, "login", gin.H{
			"Title": "Login",
			"Form":  LoginForm{Email: form.Email},
			"Next":  safeNext(c.Query("next")),
			"Flash": &FlashMessage{Category: "danger", Message: "Login Unsuccessful. Please check email and password"},
		})
		return
	}

	token, ttl, err := h.authService.IssueSession(user.ID, form.Remember)
	if err != nil {
		renderServerError(c)
		return
	}
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)

	if next := safeNext(c.Query("next")); next != "" {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, "/input_classes")
}

// Logout handles GET /logout. Idempotent; always lands on home.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/home")
}

// ShowResetRequest handles GET /reset_password
func (h *AuthHandler) ShowResetRequest(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	render(c, http.StatusOK, "reset_request", gin.H{"Title": "Reset Password", "Form": ResetRequestForm{}})
}

// ResetRequest handles POST /reset_password. The success message is the
// same whether or not the address is registered.
func (h *AuthHandler) ResetRequest(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form ResetRequestForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "reset_request", gin.H{
			"Title":  "Reset Password",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), form.Email); err != nil {
		renderServerError(c)
		return
	}

	flash(c, "info", "An email has been sent with instructions to reset your password.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowResetPassword handles GET /reset_password/:token
func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	token := c.Param("token")
	if err := h.userService.VerifyResetToken(token); err != nil {
		flash(c, "warning", "That is an invalid or expired token")
		c.Redirect(http.StatusFound, "/reset_password")
		return
	}

	render(c, http.StatusOK, "reset_token", gin.H{
		"Title": "Reset Password",
		"Token": token,
		"Form":  ResetPasswordForm{},
	})
}

// ResetPassword handles POST /reset_password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	token := c.Param("token")

	var form ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "reset_token", gin.H{
			"Title":  "Reset Password",
			"Token":  token,
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	err := h.userService.ResetPassword(c.Request.Context(), token, form.Password)
	if errors.Is(err, service.ErrInvalidToken) {
		flash(c, "warning", "That is an invalid or expired token")
		c.Redirect(http.StatusFound, "/reset_password")
		return
	}
	if err != nil {
		renderServerError(c)
		return
	}

	flash(c, "success", "Your password has been updated! You are now able to log in")
	c.Redirect(http.StatusFound, "/login")
}

package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AccountController defines the account related pages
type AccountController interface {
	Login(c *gin.Context)
	LoginPost(c *gin.Context)
	Register(c *gin.Context)
	RegisterPost(c *gin.Context)
	VerifyEmail(c *gin.Context)
	VerifyEmailPost(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ForgotPasswordPost(c *gin.Context)
	ChangePassword(c *gin.Context)
	ChangePasswordPost(c *gin.Context)
	ConfirmPasswordChange(c *gin.Context)
	AIFeatures(c *gin.Context)
	AIFeaturesPost(c *gin.Context)
	ConfirmAIChoice(c *gin.Context)
	Logout(c *gin.Context)
}

type accountController struct {
	accounts accounts.AccountService
	sessions *session.Manager
	searches *session.SearchStore
	logger   logger.Logger
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService accounts.AccountService, sessions *session.Manager, searches *session.SearchStore, logger logger.Logger) AccountController {
	return &accountController{
		accounts: accountService,
		sessions: sessions,
		searches: searches,
		logger:   logger,
	}
}

func (ac *accountController) Login(c *gin.Context) {
	render(c, http.StatusOK, "login.html", "Log in", &LoginViewModel{})
}

func (ac *accountController) LoginPost(c *gin.Context) {
	var form LoginViewModel
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		form.Errors = []string{"The form could not be read."}
		render(c, http.StatusBadRequest, "login.html", "Log in", &form)
		return
	}

	if form.Errors = validateForm(&form); len(form.Errors) > 0 {
		form.Password = ""
		render(c, http.StatusOK, "login.html", "Log in", &form)
		return
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, accounts.ErrInvalidCredentials) {
			ac.logger.Error("Login failed:", err)
		}
		form.Password = ""
		form.Errors = []string{"Email or password is incorrect."}
		render(c, http.StatusOK, "login.html", "Log in", &form)
		return
	}

	if err := ac.startSession(c, user.ID, form.RememberMe); err != nil {
		ac.logger.Error("Failed to start session:", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}
	redirect(c, "/Home/Index")
}

func (ac *accountController) Register(c *gin.Context) {
	render(c, http.StatusOK, "register.html", "Register", &RegisterViewModel{})
}

func (ac *accountController) RegisterPost(c *gin.Context) {
	var form RegisterViewModel
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		form.Errors = []string{"The form could not be read."}
		render(c, http.StatusBadRequest, "register.html", "Register", &form)
		return
	}

	if form.Errors = validateForm(&form); len(form.Errors) > 0 {
		form.Password, form.ConfirmPassword = "", ""
		render(c, http.StatusOK, "register.html", "Register", &form)
		return
	}

	if _, err := ac.accounts.Register(c.Request.Context(), form.Name, form.Email, form.Password); err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailTaken):
			form.Errors = []string{"Email '" + form.Email + "' is already taken."}
		case errors.Is(err, accounts.ErrWeakPassword):
			form.Errors = []string{"Passwords must have at least one uppercase letter, one lowercase letter and one digit."}
		default:
			ac.logger.Error("Registration failed:", err)
			form.Errors = []string{"Something went wrong. Try again later."}
		}
		form.Password, form.ConfirmPassword = "", ""
		render(c, http.StatusOK, "register.html", "Register", &form)
		return
	}

	redirect(c, "/Account/Login")
}

func (ac *accountController) VerifyEmail(c *gin.Context) {
	render(c, http.StatusOK, "verify_email.html", "Verify email", &VerifyEmailViewModel{})
}

func (ac *accountController) VerifyEmailPost(c *gin.Context) {
	var form VerifyEmailViewModel
	_ = c.ShouldBindWith(&form, binding.Form)

	if form.Errors = validateForm(&form); len(form.Errors) > 0 {
		render(c, http.StatusOK, "verify_email.html", "Verify email", &form)
		return
	}

	user, err := ac.accounts.FindByEmail(c.Request.Context(), form.Email)
	if err != nil {
		if !errors.Is(err, accounts.ErrNotFound) {
			ac.logger.Error("Email lookup failed:", err)
		}
		form.Errors = []string{"Something went wrong."}
		render(c, http.StatusOK, "verify_email.html", "Verify email", &form)
		return
	}

	redirect(c, "/Account/ForgotPassword?username="+url.QueryEscape(user.Email))
}

func (ac *accountController) ForgotPassword(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		redirect(c, "/Account/VerifyEmail")
		return
	}
	render(c, http.StatusOK, "forgot_password.html", "Reset password", &ForgotPasswordViewModel{Email: username})
}

func (ac *accountController) ForgotPasswordPost(c *gin.Context) {
	var form ForgotPasswordViewModel
	_ = c.ShouldBindWith(&form, binding.Form)

	if form.Errors = validateForm(&form); len(form.Errors) > 0 {
		form.NewPassword, form.ConfirmNewPassword = "", ""
		render(c, http.StatusOK, "forgot_password.html", "Reset password", &form)
		return
	}

	err := ac.accounts.ResetPassword(c.Request.Context(), form.Email, form.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotFound):
			form.Errors = []string{"Email not found."}
		case errors.Is(err, accounts.ErrWeakPassword):
			form.Errors = []string{"Passwords must have at least one uppercase letter, one lowercase letter and one digit."}
		default:
			ac.logger.Error("Password reset failed:", err)
			form.Errors = []string{"Something went wrong. Try again later."}
		}
		form.NewPassword, form.ConfirmNewPassword = "", ""
		render(c, http.StatusOK, "forgot_password.html", "Reset password", &form)
		return
	}

	redirect(c, "/Account/Login")
}

func (ac *accountController) ChangePassword(c *gin.Context) {
	render(c, http.StatusOK, "change_password.html", "Change password", &ChangePasswordViewModel{})
}

func (ac *accountController) ChangePasswordPost(c *gin.Context) {
	user := currentUser(c)

	var form ChangePasswordViewModel
	_ = c.ShouldBindWith(&form, binding.Form)

	if form.Errors = validateForm(&form); len(form.Errors) == 0 {
		err := ac.accounts.ChangePassword(c.Request.Context(), user.ID, form.CurrentPassword, form.NewPassword)
		switch {
		case err == nil:
			redirect(c, "/Account/ConfirmPasswordChange")
			return
		case errors.Is(err, accounts.ErrInvalidCredentials):
			form.Errors = []string{"The current password is incorrect."}
		case errors.Is(err, accounts.ErrWeakPassword):
			form.Errors = []string{"Passwords must have at least one uppercase letter, one lowercase letter and one digit."}
		default:
			ac.logger.Error("Password change failed:", err)
			form.Errors = []string{"Something went wrong. Try again later."}
		}
	}

	form.CurrentPassword, form.NewPassword, form.ConfirmNewPassword = "", "", ""
	render(c, http.StatusOK, "change_password.html", "Change password", &form)
}

func (ac *accountController) ConfirmPasswordChange(c *gin.Context) {
	render(c, http.StatusOK, "confirm_password_change.html", "Password changed", nil)
}

func (ac *accountController) AIFeatures(c *gin.Context) {
	user := currentUser(c)
	render(c, http.StatusOK, "ai_features.html", "AI features", &AIFeaturesViewModel{AcceptAIFeatures: user.AcceptedAIFeatures})
}

func (ac *accountController) AIFeaturesPost(c *gin.Context) {
	user := currentUser(c)

	var form AIFeaturesViewModel
	_ = c.ShouldBindWith(&form, binding.Form)

	if err := ac.accounts.SetAIFeatures(c.Request.Context(), user.ID, form.AcceptAIFeatures); err != nil {
		ac.logger.Error("Failed to store AI choice:", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}
	redirect(c, "/Account/ConfirmAIChoice")
}

func (ac *accountController) ConfirmAIChoice(c *gin.Context) {
	render(c, http.StatusOK, "confirm_ai_choice.html", "AI features", &AIFeaturesViewModel{AcceptAIFeatures: currentUser(c).AcceptedAIFeatures})
}

func (ac *accountController) Logout(c *gin.Context) {
	if s := currentSession(c); s != nil {
		ac.searches.Delete(s.ID)
	}
	if err := ac.startSession(c, "", false); err != nil {
		ac.sessions.Clear(c.Writer)
	}
	redirect(c, "/Home/Index")
}

// startSession replaces the session with a fresh one so that session IDs and
// CSRF tokens never survive a login or logout
func (ac *accountController) startSession(c *gin.Context, userID string, persistent bool) error {
	if s := currentSession(c); s != nil {
		ac.searches.Delete(s.ID)
	}
	s, err := ac.sessions.New(userID, persistent)
	if err != nil {
		return err
	}
	return writeSession(c, ac.sessions, s)
}

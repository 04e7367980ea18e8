package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/form"
	"github.com/iliyamo/movie-list/internal/logging"
	"github.com/iliyamo/movie-list/internal/repository"
	"github.com/iliyamo/movie-list/internal/session"
	"github.com/iliyamo/movie-list/internal/utils"
)

// Flash messages shown by the auth pages.
const (
	MsgEmailNotFound     = "Email not found. Please register first"
	MsgIncorrectPassword = "Incorrect password. Please try again"
	MsgAlreadyRegistered = "You already have an account. Please Login"
	MsgRegistered        = "Registration successful! Please log in."
	MsgLoggedOut         = "You have been logged out."
)

// AuthHandler bundles dependencies for the login, register and logout pages.
type AuthHandler struct {
	Accounts   *repository.AccountRepo
	Sessions   *session.Manager
	BcryptCost int
}

func NewAuthHandler(accounts *repository.AccountRepo, sessions *session.Manager, bcryptCost int) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Sessions: sessions, BcryptCost: bcryptCost}
}

// LoginPage renders the empty login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", page(c, "Login", nil))
}

// Login verifies the credentials and starts a session.  Unknown emails and
// wrong passwords are reported as flashes on a fresh login page.
func (h *AuthHandler) Login(c echo.Context) error {
	f := form.BindLogin(c)
	if errs := f.Validate(); !errs.OK() {
		return c.Render(http.StatusUnprocessableEntity, "login.html", page(c, "Login", echo.Map{
			"Errors": errs,
			"Form":   map[string]string{"email": f.Email},
		}))
	}

	ctx := c.Request().Context()
	acc, err := h.Accounts.GetByEmail(ctx, f.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		session.AddFlash(c, MsgEmailNotFound)
		return c.Redirect(http.StatusFound, "/login")
	}
	if err != nil {
		return err
	}
	if err := utils.CheckPassword(acc.PasswordHash, f.Password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			return err
		}
		session.AddFlash(c, MsgIncorrectPassword)
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.Sessions.Login(c, acc.ID); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Uint64("account_id", acc.ID).Msg("login")
	return c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the empty registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", page(c, "Register", nil))
}

// Register creates an account unless the email is already taken, then sends
// the user to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	f := form.BindRegister(c)
	if errs := f.Validate(); !errs.OK() {
		return c.Render(http.StatusUnprocessableEntity, "register.html", page(c, "Register", echo.Map{
			"Errors": errs,
			"Form":   map[string]string{"email": f.Email, "name": f.Name},
		}))
	}

	ctx := c.Request().Context()
	n, err := h.Accounts.CountByEmail(ctx, f.Email)
	if err != nil {
		return err
	}
	if n > 0 {
		session.AddFlash(c, MsgAlreadyRegistered)
		return c.Redirect(http.StatusFound, "/login")
	}

	hash, err := utils.HashPassword(f.Password, h.BcryptCost)
	if err != nil {
		return err
	}
	acc, err := h.Accounts.Create(ctx, f.Email, hash, f.Name)
	if errors.Is(err, repository.ErrEmailExists) {
		// lost a race with a concurrent registration
		session.AddFlash(c, MsgAlreadyRegistered)
		return c.Redirect(http.StatusFound, "/login")
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Uint64("account_id", acc.ID).Msg("account registered")
	session.AddFlash(c, MsgRegistered)
	return c.Redirect(http.StatusFound, "/login")
}

// Logout ends the session and returns to the home page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.Logout(c); err != nil {
		return err
	}
	session.AddFlash(c, MsgLoggedOut)
	return c.Redirect(http.StatusFound, "/")
}

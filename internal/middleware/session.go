package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/logging"
	"github.com/iliyamo/movie-list/internal/model"
	"github.com/iliyamo/movie-list/internal/repository"
	"github.com/iliyamo/movie-list/internal/session"
)

// MsgLoginRequired is flashed when an anonymous user hits a protected page.
const MsgLoginRequired = "Please log in to access this page."

// AccountLookup resolves the account a session is bound to.
type AccountLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Account, error)
}

// LoadAccount resolves the session cookie into an account for every request.
// Anonymous requests pass through untouched.  A session whose account no
// longer exists is dropped and the request continues as a guest.
func LoadAccount(sessions *session.Manager, accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok, err := sessions.Current(c)
			if err != nil {
				return err
			}
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			acc, err := accounts.GetByID(ctx, id)
			switch {
			case errors.Is(err, repository.ErrAccountNotFound):
				logging.Ctx(ctx).Warn().Uint64("account_id", id).Msg("session bound to missing account, dropping it")
				if err := sessions.Logout(c); err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				SetAccount(c, acc)
			}
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous users to the login page with a flash.
// It must run after LoadAccount.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentAccount(c); !ok {
			session.AddFlash(c, MsgLoginRequired)
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

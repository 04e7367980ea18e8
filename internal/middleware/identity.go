package middleware

// identity.go holds the account resolved for the current request.  LoadAccount
// stores it and handlers read it back through CurrentAccount.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/model"
)

const accountKey = "account"

// SetAccount attaches the logged in account to the request.
func SetAccount(c echo.Context, a *model.Account) {
	c.Set(accountKey, a)
}

// CurrentAccount returns the logged in account, if any.
func CurrentAccount(c echo.Context) (*model.Account, bool) {
	a, ok := c.Get(accountKey).(*model.Account)
	if !ok || a == nil {
		return nil, false
	}
	return a, true
}

// accountLabel identifies the caller in access logs.  It returns "guest"
// when nobody is logged in.
func accountLabel(c echo.Context) string {
	if a, ok := CurrentAccount(c); ok {
		return strconv.FormatUint(a.ID, 10)
	}
	return "guest"
}

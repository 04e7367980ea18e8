package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/utils"
)

// CookieName is the name of the login cookie.
const CookieName = "session"

// Manager issues, resolves and tears down login sessions.  One Manager is
// built at startup and handed to the handlers and middleware that need it.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	secure bool
}

// NewManager builds a Manager over store.  secret signs the session cookie.
func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, secret: secret, ttl: ttl, secure: secure}
}

// Login starts a new session bound to accountID and sets the cookie.
func (m *Manager) Login(c echo.Context, accountID uint64) error {
	sid := uuid.NewString()
	tok, err := utils.NewSessionToken(m.secret, accountID, sid, m.ttl)
	if err != nil {
		return err
	}
	if err := m.store.Save(c.Request().Context(), sid, accountID, m.ttl); err != nil {
		return err
	}
	c.SetCookie(m.cookie(tok.Token, tok.Exp))
	return nil
}

// Current returns the account bound to the request's session.  ok is false
// for anonymous requests, forged or expired cookies and revoked sessions;
// err is only set when the store itself fails.
func (m *Manager) Current(c echo.Context) (accountID uint64, ok bool, err error) {
	claims, ok := m.claims(c)
	if !ok {
		return 0, false, nil
	}
	id, err := m.store.Load(c.Request().Context(), claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if id != claims.AccountID {
		return 0, false, nil
	}
	return id, true, nil
}

// Logout deletes the server-side session (if any) and expires the cookie.
func (m *Manager) Logout(c echo.Context) error {
	var err error
	if claims, ok := m.claims(c); ok {
		err = m.store.Delete(c.Request().Context(), claims.SessionID)
	}
	c.SetCookie(m.cookie("", time.Unix(0, 0)))
	return err
}

func (m *Manager) claims(c echo.Context) (utils.SessionClaims, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return utils.SessionClaims{}, false
	}
	claims, err := utils.ParseSessionToken(m.secret, ck.Value)
	if err != nil {
		return utils.SessionClaims{}, false
	}
	return claims, true
}

func (m *Manager) cookie(value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	return ck
}

package session

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// FlashCookieName carries one-shot messages across a redirect.
const FlashCookieName = "flash"

const (
	flashSep     = "\x1f"
	flashPending = "session.flash"
)

// AddFlash queues msg for the next page the browser renders.
func AddFlash(c echo.Context, msg string) {
	if msg == "" {
		return
	}
	pending, _ := c.Get(flashPending).([]string)
	pending = append(pending, msg)
	c.Set(flashPending, pending)
	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(strings.Join(pending, flashSep))),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flashes returns the messages carried by the request and consumes them.
func Flashes(c echo.Context) []string {
	ck, err := c.Cookie(FlashCookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	if _, queued := c.Get(flashPending).([]string); !queued {
		c.SetCookie(&http.Cookie{Name: FlashCookieName, Value: "", Path: "/", MaxAge: -1})
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil || len(raw) == 0 {
		return nil
	}
	return strings.Split(string(raw), flashSep)
}

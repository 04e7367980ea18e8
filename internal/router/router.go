// Package router wires handlers and middleware onto Echo.
package router

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-list/internal/handler"
	"github.com/iliyamo/movie-list/internal/middleware"
	"github.com/iliyamo/movie-list/internal/session"
	"github.com/iliyamo/movie-list/internal/view"
)

// Deps carries everything the routes need.
type Deps struct {
	DB       *sql.DB
	Sessions *session.Manager
	Accounts middleware.AccountLookup
	Auth     *handler.AuthHandler
	Movies   *handler.MovieHandler

	CSRF         bool // require a csrf_token on unsafe requests
	CookieSecure bool
}

// RegisterRoutes installs the global middleware and every page of the site.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	if d.CSRF {
		e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
			TokenLookup:    "form:csrf_token",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   d.CookieSecure,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/healthz"
			},
		}))
	}
	e.Use(middleware.LoadAccount(d.Sessions, d.Accounts))

	// The health check is used by load balancers and monitoring.
	e.GET("/healthz", handler.Health(d.DB))

	e.GET("/", handler.Index)

	e.GET("/login", d.Auth.LoginPage)
	e.POST("/login", d.Auth.Login)
	e.GET("/register", d.Auth.RegisterPage)
	e.POST("/register", d.Auth.Register)
	e.GET("/logout", d.Auth.Logout)

	e.GET("/search_movies", d.Movies.SearchPage)
	e.POST("/search_movies", d.Movies.Search)
	e.GET("/add", d.Movies.Add, middleware.RequireLogin)
	e.GET("/my_list", d.Movies.MyList, middleware.RequireLogin)

	// Edit and delete stay open to any caller unless ownership is enforced,
	// in which case the handler also hides other accounts' entries.
	var owned []echo.MiddlewareFunc
	if d.Movies.EnforceOwnership {
		owned = append(owned, middleware.RequireLogin)
	}
	e.GET("/edit", d.Movies.EditPage, owned...)
	e.POST("/edit", d.Movies.Edit, owned...)
	e.GET("/delete", d.Movies.Delete, owned...)
}

// NewServer builds an Echo instance with the HTML renderer, the error page
// handler and all routes installed.
func NewServer(d Deps) (*echo.Echo, error) {
	r, err := view.New()
	if err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = r
	e.HTTPErrorHandler = handler.ErrorHandler
	RegisterRoutes(e, d)
	return e, nil
}

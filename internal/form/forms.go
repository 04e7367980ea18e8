package form

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Messages shown next to fields.
const (
	MsgEmail       = "Must be an email. Need @"
	MsgPasswordLen = "Password must be at least 8 characters long."
	MsgRating      = "Must be 1 to 10"

	minPasswordLen = 8
)

// Errors maps a field name to the reason it was rejected.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Get returns the reason for field, or "".
func (e Errors) Get(field string) string { return e[field] }

func (e Errors) add(fe *FieldError) {
	if fe != nil {
		e[fe.Field] = fe.Reason
	}
}

// LoginForm is posted to /login.
type LoginForm struct {
	Email    string
	Password string
}

// BindLogin reads a LoginForm from the posted form values.
func BindLogin(c echo.Context) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	errs.add(Check("email", f.Email, Required(""), Email(MsgEmail)))
	errs.add(Check("password", f.Password, Required(""), MinLength(minPasswordLen, MsgPasswordLen)))
	return errs
}

// RegisterForm is posted to /register.
type RegisterForm struct {
	Email    string
	Password string
	Name     string
}

// BindRegister reads a RegisterForm from the posted form values.
func BindRegister(c echo.Context) RegisterForm {
	return RegisterForm{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
		Name:     strings.TrimSpace(c.FormValue("name")),
	}
}

func (f RegisterForm) Validate() Errors {
	errs := LoginForm{Email: f.Email, Password: f.Password}.Validate()
	errs.add(Check("name", f.Name, Required("")))
	return errs
}

// MovieForm carries the personal rating, review and ranking of an entry.
// Validate fills Rating and Ranking from the raw strings when they pass.
type MovieForm struct {
	RatingRaw  string
	Review     string
	RankingRaw string

	Rating  float64
	Ranking int
}

// BindMovie reads a MovieForm from the posted form values.
func BindMovie(c echo.Context) MovieForm {
	return MovieForm{
		RatingRaw:  strings.TrimSpace(c.FormValue("rating")),
		Review:     c.FormValue("review"),
		RankingRaw: strings.TrimSpace(c.FormValue("ranking")),
	}
}

func (f *MovieForm) Validate() Errors {
	errs := Errors{}
	if fe := Check("rating", f.RatingRaw, Required(""), Decimal(1, 10, MsgRating)); fe != nil {
		errs.add(fe)
	} else {
		f.Rating, _ = strconv.ParseFloat(strings.TrimSpace(f.RatingRaw), 64)
	}
	errs.add(Check("review", f.Review, Required("")))
	if fe := Check("ranking", f.RankingRaw, Required(""), Integer(1, 10, "")); fe != nil {
		errs.add(fe)
	} else {
		f.Ranking, _ = strconv.Atoi(strings.TrimSpace(f.RankingRaw))
	}
	return errs
}

// SearchForm is posted to /search_movies.
type SearchForm struct {
	Search string
}

// BindSearch reads a SearchForm from the posted form values.
func BindSearch(c echo.Context) SearchForm {
	return SearchForm{Search: strings.TrimSpace(c.FormValue("search"))}
}

func (f SearchForm) Validate() Errors {
	errs := Errors{}
	errs.add(Check("search", f.Search, Required("")))
	return errs
}

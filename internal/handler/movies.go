package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-list/internal/form"
	"github.com/iliyamo/movie-list/internal/logging"
	"github.com/iliyamo/movie-list/internal/middleware"
	"github.com/iliyamo/movie-list/internal/model"
	"github.com/iliyamo/movie-list/internal/queue"
	"github.com/iliyamo/movie-list/internal/repository"
	"github.com/iliyamo/movie-list/internal/service"
	"github.com/iliyamo/movie-list/internal/session"
	"github.com/iliyamo/movie-list/internal/tmdb"
)

// Messages shown by the list pages.
const (
	MsgAdded        = "Movie just added to your list"
	MsgDeleted      = "Movie in the list just been deleted"
	MsgAlreadyAdded = "That movie is already on a list."
	MsgNoResults    = "No movie found for that title."
	MsgNoTitle      = "Pick a movie to add."
	MsgEntryMissing = "Movie not found."
)

const publishTimeout = 3 * time.Second

// MovieSearcher is the provider client used by the list pages.
type MovieSearcher interface {
	Search(ctx context.Context, query string) ([]tmdb.Movie, error)
	First(ctx context.Context, query string) (tmdb.Movie, error)
	ImageBase() string
}

// MovieHandler serves search, add, edit, list and delete.
type MovieHandler struct {
	Entries  *repository.EntryRepo
	Provider MovieSearcher
	Events   service.Publisher

	// EnforceOwnership restricts edit and delete to the account that added
	// the entry.  When false any caller may change any entry by id.
	EnforceOwnership bool
}

func NewMovieHandler(entries *repository.EntryRepo, provider MovieSearcher, events service.Publisher, enforceOwnership bool) *MovieHandler {
	if events == nil {
		events = service.NopPublisher{}
	}
	return &MovieHandler{Entries: entries, Provider: provider, Events: events, EnforceOwnership: enforceOwnership}
}

// SearchPage renders the empty search form.
func (h *MovieHandler) SearchPage(c echo.Context) error {
	return c.Render(http.StatusOK, "search.html", page(c, "Search", nil))
}

// Search queries the provider and lists the first page of results.
func (h *MovieHandler) Search(c echo.Context) error {
	f := form.BindSearch(c)
	data := echo.Map{"Form": map[string]string{"search": f.Search}}
	if errs := f.Validate(); !errs.OK() {
		data["Errors"] = errs
		return c.Render(http.StatusUnprocessableEntity, "search.html", page(c, "Search", data))
	}

	ctx := c.Request().Context()
	movies, err := h.Provider.Search(ctx, f.Search)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("query", f.Search).Msg("movie search failed")
		return err
	}
	data["Movies"] = movies
	return c.Render(http.StatusOK, "search.html", page(c, "Search", data))
}

// Add looks the title up again, stores the first result on the caller's
// list with no rating, review or ranking, and opens the edit page.
func (h *MovieHandler) Add(c echo.Context) error {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	title := strings.TrimSpace(c.QueryParam("title"))
	if title == "" {
		session.AddFlash(c, MsgNoTitle)
		return c.Redirect(http.StatusFound, "/search_movies")
	}

	ctx := c.Request().Context()
	m, err := h.Provider.First(ctx, title)
	if errors.Is(err, tmdb.ErrNoResults) {
		session.AddFlash(c, MsgNoResults)
		return c.Redirect(http.StatusFound, "/search_movies")
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("title", title).Msg("movie lookup failed")
		return err
	}

	e := &model.Entry{
		AccountID:   acc.ID,
		Title:       m.Title,
		Year:        m.Year(),
		Description: m.Overview,
		ImageURL:    m.ImageURL(h.Provider.ImageBase()),
	}
	if err := h.Entries.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrTitleExists) {
			session.AddFlash(c, MsgAlreadyAdded)
			return c.Redirect(http.StatusFound, "/my_list")
		}
		return err
	}

	h.publish(c, queue.ActivityEvent{Type: queue.EntryAdded, EntryID: e.ID, AccountID: e.AccountID, Title: e.Title})
	q := url.Values{}
	q.Set("id", strconv.FormatUint(e.ID, 10))
	q.Set("msg", MsgAdded)
	return c.Redirect(http.StatusFound, "/edit?"+q.Encode())
}

// EditPage shows an entry with its current rating, review and ranking.
func (h *MovieHandler) EditPage(c echo.Context) error {
	e, err := h.loadEntry(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit.html", page(c, e.Title, echo.Map{
		"Entry":   e,
		"Message": c.QueryParam("msg"),
		"Form": map[string]string{
			"rating":  ratingValue(e.Rating),
			"review":  stringValue(e.Review),
			"ranking": rankingValue(e.Ranking),
		},
	}))
}

// Edit overwrites the rating, review and ranking of an entry.  Invalid input
// re-renders the form and leaves the entry untouched.
func (h *MovieHandler) Edit(c echo.Context) error {
	e, err := h.loadEntry(c)
	if err != nil {
		return err
	}
	f := form.BindMovie(c)
	if errs := f.Validate(); !errs.OK() {
		return c.Render(http.StatusUnprocessableEntity, "edit.html", page(c, e.Title, echo.Map{
			"Entry":  e,
			"Errors": errs,
			"Form": map[string]string{
				"rating":  f.RatingRaw,
				"review":  f.Review,
				"ranking": f.RankingRaw,
			},
		}))
	}

	if err := h.Entries.UpdateReview(c.Request().Context(), e.ID, f.Rating, f.Ranking, f.Review); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgEntryMissing)
		}
		return err
	}

	h.publish(c, queue.ActivityEvent{
		Type: queue.EntryReviewed, EntryID: e.ID, AccountID: e.AccountID, Title: e.Title,
		Rating: &f.Rating, Ranking: &f.Ranking,
	})
	return c.Redirect(http.StatusFound, "/my_list")
}

// MyList renders every entry owned by the logged in account.
func (h *MovieHandler) MyList(c echo.Context) error {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	entries, err := h.Entries.ListByAccount(c.Request().Context(), acc.ID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "mylist.html", page(c, "My List", echo.Map{"Entries": entries}))
}

// Delete removes an entry and returns to the list.
func (h *MovieHandler) Delete(c echo.Context) error {
	e, err := h.loadEntry(c)
	if err != nil {
		return err
	}
	if err := h.Entries.Delete(c.Request().Context(), e.ID); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgEntryMissing)
		}
		return err
	}

	h.publish(c, queue.ActivityEvent{Type: queue.EntryDeleted, EntryID: e.ID, AccountID: e.AccountID, Title: e.Title})
	session.AddFlash(c, MsgDeleted)
	return c.Redirect(http.StatusFound, "/my_list")
}

// loadEntry resolves the id query parameter into an entry.  Missing, malformed
// and unknown ids are all 404, as are entries of other accounts when
// ownership is enforced.
func (h *MovieHandler) loadEntry(c echo.Context) (*model.Entry, error) {
	id, ok := queryID(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, MsgEntryMissing)
	}
	e, err := h.Entries.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, MsgEntryMissing)
	}
	if err != nil {
		return nil, err
	}
	if h.EnforceOwnership {
		acc, ok := middleware.CurrentAccount(c)
		if !ok || acc.ID != e.AccountID {
			return nil, echo.NewHTTPError(http.StatusNotFound, MsgEntryMissing)
		}
	}
	return e, nil
}

// publish hands the event to the broker.  Failures are logged by the
// publisher and never fail the request.
func (h *MovieHandler) publish(c echo.Context, ev queue.ActivityEvent) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()
	ev.OccurredAt = time.Now().UTC()
	_ = h.Events.Publish(ctx, ev)
}

func ratingValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func rankingValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

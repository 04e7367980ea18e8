package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchSendsKeyAndQuery(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "k123" {
			t.Errorf("api_key = %q, want k123", got)
		}
		if got := r.URL.Query().Get("query"); got != "The Matrix" {
			t.Errorf("query = %q, want The Matrix", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-30","overview":"Neo.","backdrop_path":"/bg.jpg"},
			{"id":604,"title":"The Matrix Reloaded","release_date":"","overview":"More Neo.","poster_path":"/p.jpg"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("k123", Options{SearchURL: srv.URL, ImageBase: "https://img.example/w500/"})
	movies, err := c.Search(context.Background(), "The Matrix")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("Search() returned %d movies, want 2", len(movies))
	}
	m := movies[0]
	if m.Title != "The Matrix" || m.Year() != "1999" || m.Overview != "Neo." {
		t.Errorf("first movie = %+v", m)
	}
	if got := m.ImageURL(c.ImageBase()); got != "https://img.example/w500/bg.jpg" {
		t.Errorf("ImageURL() = %q", got)
	}
	if got := movies[1].ImageURL(c.ImageBase()); got != "https://img.example/w500/p.jpg" {
		t.Errorf("poster fallback = %q", got)
	}
	if movies[1].Year() != "" {
		t.Errorf("Year() for empty date = %q, want empty", movies[1].Year())
	}
}

func TestFirstNoResults(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", Options{SearchURL: srv.URL})
	if _, err := c.First(context.Background(), "zzzz"); !errors.Is(err, ErrNoResults) {
		t.Fatalf("First() error = %v, want ErrNoResults", err)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad", Options{SearchURL: srv.URL})
	_, err := c.Search(context.Background(), "x")
	if !errors.Is(err, ErrProviderStatus) {
		t.Fatalf("Search() error = %v, want ErrProviderStatus", err)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer srv.Close()

	c := NewClient("k", Options{SearchURL: srv.URL})
	if _, err := c.Search(context.Background(), "x"); err == nil {
		t.Fatal("Search() error = nil, want decode error")
	}
}

func TestSearchTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient("k", Options{SearchURL: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := c.Search(context.Background(), "slow"); err == nil {
		t.Fatal("Search() error = nil, want timeout")
	}
}

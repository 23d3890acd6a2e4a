package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/blogdb/pkg/domain"
	"github.com/umputun/blogdb/pkg/repository"
	"github.com/umputun/blogdb/pkg/service"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
	maxFeedURLLength = 2048
)

type articleResponse struct {
	ID        int64      `json:"id"`
	FeedID    int64      `json:"feed_id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Summary   string     `json:"summary,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type feedResponse struct {
	ID        int64                 `json:"id"`
	URL       string                `json:"url"`
	Status    domain.AnalysisStatus `json:"status"`
	LastError string                `json:"last_error,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type createFeedRequest struct {
	URL string `json:"url"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	})
}

// listArticlesHandler returns stored articles, newest first
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	articles, err := s.db.ListArticles(r.Context(), limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to list articles: %v", err)
		renderError(w, r, errors.New("failed to list articles"), http.StatusInternalServerError)
		return
	}
	total, err := s.db.CountArticles(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to count articles: %v", err)
		renderError(w, r, errors.New("failed to count articles"), http.StatusInternalServerError)
		return
	}

	resp := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, toArticleResponse(a))
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"articles": resp, "total": total, "limit": limit, "offset": offset})
}

// getArticleHandler returns a single article
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid article ID"), http.StatusBadRequest)
		return
	}

	article, err := s.db.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, errors.New("article not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get article %d: %v", id, err)
		renderError(w, r, errors.New("failed to get article"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toArticleResponse(*article))
}

// listFeedsHandler returns registered feeds with their processing status
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, errors.New("failed to get feeds"), http.StatusInternalServerError)
		return
	}

	resp := make([]feedResponse, 0, len(feeds))
	for _, f := range feeds {
		resp = append(resp, toFeedResponse(f))
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"feeds": resp})
}

// createFeedHandler registers a feed. Responds 201 for a new feed and 200 with the
// stored record for a known url.
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req createFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}
	if len(req.URL) > maxFeedURLLength {
		renderError(w, r, errors.New("feed url is too long"), http.StatusBadRequest)
		return
	}

	feed, created, err := s.registrar.Register(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		lgr.Printf("[ERROR] failed to register feed %q: %v", req.URL, err)
		renderError(w, r, errors.New("failed to register feed"), http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	renderJSON(w, r, code, toFeedResponse(*feed))
}

// sweepHandler starts a sweep over all feeds in the background
func (s *Server) sweepHandler(w http.ResponseWriter, r *http.Request) {
	if !s.sweeper.TriggerSweep() {
		renderError(w, r, errors.New("sweep already in progress"), http.StatusConflict)
		return
	}
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "started"})
}

// pagination reads limit and offset query parameters
func pagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
		limit = min(limit, maxPageLimit)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	return limit, offset, nil
}

func toArticleResponse(a domain.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		FeedID:    a.FeedID,
		Title:     a.Title,
		URL:       a.URL,
		Summary:   a.Summary,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
	}
}

func toFeedResponse(f domain.Feed) feedResponse {
	return feedResponse{
		ID:        f.ID,
		URL:       f.URL,
		Status:    f.Status,
		LastError: f.LastError,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

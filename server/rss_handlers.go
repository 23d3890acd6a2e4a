package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/blogdb/pkg/feed"
)

const defaultRSSLimit = 100

// rssHandler serves the latest article summaries as an RSS feed
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.db.ListArticles(r.Context(), defaultRSSLimit, 0)
	if err != nil {
		lgr.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateRSS(articles)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports registered feeds as an OPML subscription list
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get feeds for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateOPML(feeds)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="blogdb.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

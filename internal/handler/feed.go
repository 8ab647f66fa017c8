package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
)

// FeedHandler serves the Atom syndication feed.
type FeedHandler struct {
	entries   EntryStore
	templates *Templates
	baseURL   string
	siteTitle string
	logger    *slog.Logger
}

// NewFeedHandler creates a new FeedHandler. baseURL is the absolute site
// root used for entry links in the feed, without a trailing slash.
func NewFeedHandler(entries EntryStore, templates *Templates, baseURL, siteTitle string, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		entries:   entries,
		templates: templates,
		baseURL:   baseURL,
		siteTitle: siteTitle,
		logger:    logger,
	}
}

// Feed handles GET /feed: the 10 most recent entries as Atom.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.RecentEntries(r.Context(), feedEntryLimit)
	if err != nil {
		h.logger.Error("internal_error", "request_id", getRequestID(r), "error", err)
		renderError(w, r, h.logger, h.templates, http.StatusInternalServerError, "")
		return
	}

	updated := time.Now()
	if len(entries) > 0 {
		updated = entries[0].Updated
	}

	feed := &feeds.Feed{
		Title:   h.siteTitle,
		Link:    &feeds.Link{Href: h.baseURL + "/"},
		Updated: updated,
	}

	for _, entry := range entries {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:      h.baseURL + entry.Permalink(),
			Title:   entry.Title,
			Link:    &feeds.Link{Href: h.baseURL + entry.Permalink()},
			Content: entry.HTML,
			Created: entry.Published,
			Updated: entry.Updated,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		h.logger.Error("feed_render_failed", "request_id", getRequestID(r), "error", err)
		renderError(w, r, h.logger, h.templates, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(atom)); err != nil {
		h.logger.Error("feed_write_failed", "request_id", getRequestID(r), "error", err)
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func newBlogHandler(t *testing.T, store *fakeEntryStore) *BlogHandler {
	t.Helper()
	return NewBlogHandler(store, testTemplates(t), testLogger())
}

func TestHome_EmptyBlogRedirectsToCompose(t *testing.T) {
	t.Parallel()

	h := newBlogHandler(t, newFakeEntryStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/compose" {
		t.Errorf("Location = %q, want /compose", loc)
	}
}

func TestHome_ShowsFiveMostRecent(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh"}
	for i, title := range titles {
		store.addEntry(title, strings.ToLower(title), "<p>"+title+"</p>", base.Add(time.Duration(i)*time.Hour))
	}

	h := newBlogHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if store.lastLimit != homeEntryLimit {
		t.Errorf("queried limit = %d, want %d", store.lastLimit, homeEntryLimit)
	}

	body := rec.Body.String()
	// The five newest appear, the two oldest do not.
	for _, title := range titles[2:] {
		if !strings.Contains(body, title) {
			t.Errorf("body is missing recent entry %q", title)
		}
	}
	for _, title := range titles[:2] {
		if strings.Contains(body, ">"+title+"<") {
			t.Errorf("body contains old entry %q beyond the home page limit", title)
		}
	}
}

func TestArchive_ListsEverything(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.addEntry("Old Post", "old-post", "<p>old</p>", base)
	store.addEntry("New Post", "new-post", "<p>new</p>", base.Add(time.Hour))

	h := newBlogHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/archive", nil)
	rec := httptest.NewRecorder()
	h.Archive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	newIdx := strings.Index(body, "New Post")
	oldIdx := strings.Index(body, "Old Post")
	if newIdx < 0 || oldIdx < 0 {
		t.Fatalf("archive is missing entries; body:\n%s", body)
	}
	if newIdx > oldIdx {
		t.Error("archive is not ordered newest first")
	}
}

func TestEntry_RendersStoredHTML(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	store.addEntry("Hello World", "hello-world", "<p>Hello, <em>world</em></p>", time.Now())

	h := newBlogHandler(t, store)

	r := chi.NewRouter()
	r.Get("/entry/{slug}", h.Entry)

	req := httptest.NewRequest(http.MethodGet, "/entry/hello-world", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	// Stored HTML passes through unescaped.
	if !strings.Contains(rec.Body.String(), "<em>world</em>") {
		t.Errorf("body does not contain the rendered entry HTML:\n%s", rec.Body.String())
	}
}

func TestEntry_UnknownSlugIs404(t *testing.T) {
	t.Parallel()

	h := newBlogHandler(t, newFakeEntryStore())

	r := chi.NewRouter()
	r.Get("/entry/{slug}", h.Entry)

	req := httptest.NewRequest(http.MethodGet, "/entry/no-such-entry", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHome_StoreFailureIs500(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	store.failWith = errTestBoom

	h := newBlogHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

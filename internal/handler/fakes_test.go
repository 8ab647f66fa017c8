package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/model"
	"github.com/inkpress/inkpress/internal/repository"
)

// errTestBoom stands in for an unexpected database failure.
var errTestBoom = errors.New("boom")

// fakeEntryStore is an in-memory EntryStore for handler tests.
type fakeEntryStore struct {
	entries   []*model.Entry
	nextID    int64
	lastLimit int
	failWith  error
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{nextID: 1}
}

func (s *fakeEntryStore) EntryByID(_ context.Context, id int64) (*model.Entry, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, e := range s.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (s *fakeEntryStore) EntryBySlug(_ context.Context, slug string) (*model.Entry, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, e := range s.entries {
		if e.Slug == slug {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (s *fakeEntryStore) SlugExists(_ context.Context, slug string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, e := range s.entries {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEntryStore) RecentEntries(_ context.Context, limit int) ([]*model.Entry, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.lastLimit = limit
	sorted := s.sortedByPublished()
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *fakeEntryStore) AllEntries(_ context.Context) ([]*model.Entry, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sortedByPublished(), nil
}

func (s *fakeEntryStore) CreateEntry(_ context.Context, entry *model.Entry) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, e := range s.entries {
		if e.Slug == entry.Slug {
			return repository.ErrSlugExists
		}
	}
	entry.ID = s.nextID
	s.nextID++
	now := time.Now()
	entry.Published = now
	entry.Updated = now
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *fakeEntryStore) UpdateEntry(_ context.Context, id int64, title, markdown, html string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, e := range s.entries {
		if e.ID == id {
			e.Title = title
			e.Markdown = markdown
			e.HTML = html
			e.Updated = time.Now()
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (s *fakeEntryStore) sortedByPublished() []*model.Entry {
	sorted := make([]*model.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		copied := *e
		sorted = append(sorted, &copied)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})
	return sorted
}

// addEntry seeds the store with a published entry.
func (s *fakeEntryStore) addEntry(title, slug, html string, published time.Time) *model.Entry {
	entry := &model.Entry{
		ID:        s.nextID,
		AuthorID:  1,
		Title:     title,
		Slug:      slug,
		Markdown:  title,
		HTML:      html,
		Published: published,
		Updated:   published,
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry
}

// fakeAuthorStore is an in-memory AuthorStore for handler tests.
type fakeAuthorStore struct {
	authors []*model.Author
	nextID  int64
}

func newFakeAuthorStore() *fakeAuthorStore {
	return &fakeAuthorStore{nextID: 1}
}

func (s *fakeAuthorStore) AuthorByEmail(_ context.Context, email string) (*model.Author, error) {
	for _, a := range s.authors {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAuthorNotFound
}

func (s *fakeAuthorStore) AnyAuthorExists(context.Context) (bool, error) {
	return len(s.authors) > 0, nil
}

func (s *fakeAuthorStore) CreateAuthor(_ context.Context, email, name, hashedPassword string) (int64, error) {
	for _, a := range s.authors {
		if a.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	id := s.nextID
	s.nextID++
	s.authors = append(s.authors, &model.Author{
		ID:             id,
		Email:          email,
		Name:           name,
		HashedPassword: hashedPassword,
	})
	return id, nil
}

// testLogger returns a logger that discards output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTemplates parses the embedded templates once per test.
func testTemplates(t *testing.T) *Templates {
	t.Helper()
	templates, err := NewTemplates()
	if err != nil {
		t.Fatalf("NewTemplates() error = %v", err)
	}
	return templates
}

package leetcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"devtracker/backend/config"
	"devtracker/backend/models"

	"github.com/google/uuid"
)

type route struct {
	status int
	body   string
}

// fakeProviders serves the three mirrors under /a, /b and /c.
type fakeProviders struct {
	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
}

func newFakeProviders(t *testing.T) (*fakeProviders, *Client) {
	t.Helper()
	f := &fakeProviders{routes: map[string]route{}, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	client := NewClient(config.LeetCodeConfig{
		PrimaryURL:   srv.URL + "/a",
		SecondaryURL: srv.URL + "/b",
		FallbackURL:  srv.URL + "/c/",
		Timeout:      2 * time.Second,
	}, srv.Client())
	return f, client
}

func (f *fakeProviders) set(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = route{status: status, body: body}
}

func (f *fakeProviders) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeProviders) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	rt, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	fmt.Fprint(w, rt.body)
}

type fakeSource struct {
	subs  []models.Submission
	err   error
	calls int
	limit int
}

func (f *fakeSource) RecentSubmissions(_ context.Context, _ string, limit int) ([]models.Submission, error) {
	f.calls++
	f.limit = limit
	return f.subs, f.err
}

type fakeProblems struct {
	mu       sync.Mutex
	rows     []models.CodingProblem
	listErr  error
	failFor  map[string]bool
	promotes int
}

func (f *fakeProblems) List(_ context.Context, userID uuid.UUID, section string) ([]models.CodingProblem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CodingProblem
	for _, p := range f.rows {
		if p.UserID == userID && p.SectionName == section {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProblems) Create(_ context.Context, p *models.CodingProblem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[p.ProblemLink] {
		return errors.New("insert failed")
	}
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakeProblems) Promote(_ context.Context, userID uuid.UUID, section, link string, status models.ProblemStatus, at *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[link] {
		return errors.New("update failed")
	}
	f.promotes++
	for i := range f.rows {
		p := &f.rows[i]
		if p.UserID == userID && p.SectionName == section && p.ProblemLink == link {
			p.Status = status
			if status == models.StatusSolved && at != nil {
				t := *at
				p.CompletedAt = &t
			}
		}
	}
	return nil
}

func (f *fakeProblems) byLink(link string) []models.CodingProblem {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CodingProblem
	for _, p := range f.rows {
		if p.ProblemLink == link {
			out = append(out, p)
		}
	}
	return out
}

// newestFirst builds a provider-ordered list from oldest-first entries.
func newestFirst(oldestFirst ...models.Submission) []models.Submission {
	out := make([]models.Submission, len(oldestFirst))
	for i, s := range oldestFirst {
		out[len(oldestFirst)-1-i] = s
	}
	return out
}

func sub(slug, verdict string, ts int64) models.Submission {
	return models.Submission{
		Title:         strings.ReplaceAll(slug, "-", " "),
		TitleSlug:     slug,
		Timestamp:     fmt.Sprint(ts),
		StatusDisplay: verdict,
		Lang:          "go",
	}
}

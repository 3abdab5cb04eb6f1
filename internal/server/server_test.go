package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/database"
)

func newTestServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(&config.Config{}, db), db
}

func seedArticle(t *testing.T, db *database.DB, url, title, source, category string) int64 {
	t.Helper()

	a := database.Article{URL: url, Title: title}
	if source != "" {
		a.Source = &source
	}
	if category != "" {
		a.Category = &category
	}
	id, err := db.InsertArticle(a)
	if err != nil {
		t.Fatalf("inserting article: %v", err)
	}
	if id == 0 {
		t.Fatalf("duplicate article: %s", url)
	}
	return id
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	decodeBody(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestListArticles(t *testing.T) {
	s, db := newTestServer(t)
	seedArticle(t, db, "https://example.com/a", "First", "Example", "tech")
	seedArticle(t, db, "https://example.com/b", "Second", "Example", "science")
	seedArticle(t, db, "https://other.com/c", "Third", "Other", "tech")

	w := doRequest(t, s, "GET", "/api/articles")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var articles []articleJSON
	decodeBody(t, w, &articles)
	if len(articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(articles))
	}
}

func TestListArticlesFiltered(t *testing.T) {
	s, db := newTestServer(t)
	seedArticle(t, db, "https://example.com/a", "First", "Example", "tech")
	seedArticle(t, db, "https://example.com/b", "Second", "Example", "science")
	seedArticle(t, db, "https://other.com/c", "Third", "Other", "tech")

	w := doRequest(t, s, "GET", "/api/articles?category=tech")
	var articles []articleJSON
	decodeBody(t, w, &articles)
	if len(articles) != 2 {
		t.Errorf("expected 2 tech articles, got %d", len(articles))
	}

	w = doRequest(t, s, "GET", "/api/articles?source=Other")
	decodeBody(t, w, &articles)
	if len(articles) != 1 {
		t.Errorf("expected 1 article from Other, got %d", len(articles))
	}
}

func TestListArticlesPagination(t *testing.T) {
	s, db := newTestServer(t)
	seedArticle(t, db, "https://example.com/a", "First", "", "")
	seedArticle(t, db, "https://example.com/b", "Second", "", "")
	seedArticle(t, db, "https://example.com/c", "Third", "", "")

	w := doRequest(t, s, "GET", "/api/articles?skip=1&limit=1")
	var articles []articleJSON
	decodeBody(t, w, &articles)
	if len(articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(articles))
	}

	// Bad params fall back to defaults instead of erroring.
	w = doRequest(t, s, "GET", "/api/articles?skip=-5&limit=junk")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGetArticle(t *testing.T) {
	s, db := newTestServer(t)
	id := seedArticle(t, db, "https://example.com/a", "First", "Example", "tech")

	if err := db.UpdateArticleScore(id, 0.75, 0.75); err != nil {
		t.Fatalf("updating score: %v", err)
	}

	w := doRequest(t, s, "GET", "/api/articles/1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var article articleJSON
	decodeBody(t, w, &article)
	if article.Title != "First" {
		t.Errorf("title = %q", article.Title)
	}
	if article.CredibilityScore == nil || *article.CredibilityScore != 0.75 {
		t.Errorf("credibility_score = %v", article.CredibilityScore)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/articles/999")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStats(t *testing.T) {
	s, db := newTestServer(t)
	id := seedArticle(t, db, "https://example.com/a", "First", "Example", "tech")
	seedArticle(t, db, "https://example.com/b", "Second", "Example", "tech")

	if err := db.UpdateArticleScore(id, 0.7, 0.75); err != nil {
		t.Fatalf("updating score: %v", err)
	}

	w := doRequest(t, s, "GET", "/api/articles/stats/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var stats map[string]any
	decodeBody(t, w, &stats)
	if stats["total_articles"] != float64(2) {
		t.Errorf("total_articles = %v", stats["total_articles"])
	}
	if stats["scored_articles"] != float64(1) {
		t.Errorf("scored_articles = %v", stats["scored_articles"])
	}
}

func TestCategoriesAndSources(t *testing.T) {
	s, db := newTestServer(t)
	seedArticle(t, db, "https://example.com/a", "First", "Example", "tech")
	seedArticle(t, db, "https://other.com/b", "Second", "Other", "science")

	w := doRequest(t, s, "GET", "/api/articles/categories")
	var categories map[string][]string
	decodeBody(t, w, &categories)
	if len(categories["categories"]) != 2 {
		t.Errorf("categories = %v", categories["categories"])
	}

	w = doRequest(t, s, "GET", "/api/articles/sources")
	var sources map[string][]string
	decodeBody(t, w, &sources)
	if len(sources["sources"]) != 2 {
		t.Errorf("sources = %v", sources["sources"])
	}
}

func TestCategoriesEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/articles/categories")
	var categories map[string][]string
	decodeBody(t, w, &categories)
	if categories["categories"] == nil {
		t.Error("expected empty array, got null")
	}
}

func TestRefreshConflict(t *testing.T) {
	s, _ := newTestServer(t)

	// Simulate an in-flight refresh.
	s.refreshing.Store(true)
	w := doRequest(t, s, "POST", "/api/articles/refresh")
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

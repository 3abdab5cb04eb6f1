package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/database"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/pipeline"
)

const maxPageSize = 100

// Server is the JSON API server for the article store.
type Server struct {
	cfg        *config.Config
	db         *database.DB
	router     *mux.Router
	refreshing atomic.Bool
}

// New creates a new Server.
func New(cfg *config.Config, db *database.DB) *Server {
	s := &Server{cfg: cfg, db: db, router: mux.NewRouter()}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/articles", s.handleListArticles).Methods("GET")
	api.HandleFunc("/articles/refresh", s.handleRefresh).Methods("POST")
	api.HandleFunc("/articles/stats/summary", s.handleStats).Methods("GET")
	api.HandleFunc("/articles/categories", s.handleCategories).Methods("GET")
	api.HandleFunc("/articles/sources", s.handleSources).Methods("GET")
	api.HandleFunc("/articles/{id:[0-9]+}", s.handleGetArticle).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := s.db.Ping(); err != nil {
		status = "degraded"
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := database.ListFilter{
		Category: q.Get("category"),
		Source:   q.Get("source"),
		Skip:     parseIntParam(q.Get("skip"), 0),
		Limit:    parseIntParam(q.Get("limit"), 20),
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit < 1 || filter.Limit > maxPageSize {
		filter.Limit = 20
	}

	articles, err := s.db.ListArticles(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list articles")
		return
	}

	out := make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleJSON(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := s.db.GetArticleByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load article")
		return
	}
	if article == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("article %d not found", id))
		return
	}
	respondJSON(w, http.StatusOK, toArticleJSON(*article))
}

// handleRefresh kicks off a pipeline run in the background. Only one
// refresh runs at a time.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.refreshing.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "refresh already in progress")
		return
	}

	go func() {
		defer s.refreshing.Store(false)
		result := pipeline.New(s.cfg, s.db).Run(context.Background())
		for _, step := range result.Steps {
			if step.Err != nil {
				log.Printf("Refresh step %s failed: %v", step.Name, step.Err)
			}
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	topSources := make([]map[string]any, 0, len(stats.TopSources))
	for _, sc := range stats.TopSources {
		topSources = append(topSources, map[string]any{"source": sc.Source, "count": sc.Count})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_articles":      stats.TotalArticles,
		"recent_articles":     stats.RecentArticles,
		"scored_articles":     stats.ScoredArticles,
		"summarized_articles": stats.SummarizedArticles,
		"top_sources":         topSources,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.DistinctCategories()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.DistinctSources()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load sources")
		return
	}
	if sources == nil {
		sources = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"sources": sources})
}

// articleJSON is the wire representation of an article.
type articleJSON struct {
	ID               int64    `json:"id"`
	URL              string   `json:"url"`
	Title            string   `json:"title"`
	Source           *string  `json:"source"`
	Author           *string  `json:"author"`
	Category         *string  `json:"category"`
	Tags             []string `json:"tags"`
	ImageURL         *string  `json:"image_url"`
	PublishedDate    *string  `json:"published_date"`
	Content          *string  `json:"content"`
	Summary          *string  `json:"summary"`
	CredibilityScore *float64 `json:"credibility_score"`
	ScoreConfidence  *float64 `json:"score_confidence"`
	CollectedAt      *string  `json:"collected_at"`
}

func toArticleJSON(a database.Article) articleJSON {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleJSON{
		ID:               a.ID,
		URL:              a.URL,
		Title:            a.Title,
		Source:           a.Source,
		Author:           a.Author,
		Category:         a.Category,
		Tags:             tags,
		ImageURL:         a.ImageURL,
		PublishedDate:    a.PublishedDate,
		Content:          a.Content,
		Summary:          a.Summary,
		CredibilityScore: a.CredibilityScore,
		ScoreConfidence:  a.ScoreConfidence,
		CollectedAt:      a.CollectedAt,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// Serve starts the HTTP server on the given port.
func Serve(cfg *config.Config, db *database.DB) error {
	srv := New(cfg, db)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("API server listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

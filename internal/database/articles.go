package database

import (
	"database/sql"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

const articleColumns = `id, url, title, source, author, category, tags, image_url,
	published_date, content, content_fetched, summary, credibility_score, score_confidence, collected_at`

// ListFilter narrows and pages an article listing. Zero values mean
// "no filter"; Limit 0 falls back to 20.
type ListFilter struct {
	Category string
	Source   string
	Skip     int
	Limit    int
}

// InsertArticle inserts an article. Returns the ID on success, 0 if the
// URL is already stored.
func (db *DB) InsertArticle(a Article) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO articles (url, title, source, author, category, tags, image_url,
			published_date, content, summary, credibility_score, score_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.URL, a.Title, a.Source, a.Author, a.Category, marshalTags(a.Tags), a.ImageURL,
		a.PublishedDate, a.Content, a.Summary, a.CredibilityScore, a.ScoreConfidence,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// ListArticles returns articles matching the filter, newest first.
func (db *DB) ListArticles(f ListFilter) ([]Article, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	builder := sq.Select(articleColumns).
		From("articles").
		OrderBy("published_date DESC", "id DESC").
		Offset(uint64(f.Skip)).
		Limit(uint64(limit))

	if f.Category != "" {
		builder = builder.Where(sq.Eq{"category": f.Category})
	}
	if f.Source != "" {
		builder = builder.Where(sq.Eq{"source": f.Source})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// GetArticleByID returns a single article, or nil if it does not exist.
func (db *DB) GetArticleByID(id int64) (*Article, error) {
	row := db.conn.QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id,
	)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetArticlesNeedingFetch returns articles whose content is missing or
// shorter than minChars and that haven't been fetched yet.
func (db *DB) GetArticlesNeedingFetch(minChars int) ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT `+articleColumns+` FROM articles
		WHERE (content IS NULL OR length(content) < ?) AND content_fetched = 0
		ORDER BY collected_at DESC`, minChars,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// UpdateArticleContent updates article content after fetching.
func (db *DB) UpdateArticleContent(id int64, content *string) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET content = ?, content_fetched = 1 WHERE id = ?",
		content, id,
	)
	return err
}

// MarkArticleFetchAttempted marks that we tried to fetch content.
func (db *DB) MarkArticleFetchAttempted(id int64) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET content_fetched = 1 WHERE id = ?", id,
	)
	return err
}

// GetUnscoredArticles returns articles without a credibility score.
func (db *DB) GetUnscoredArticles() ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT ` + articleColumns + ` FROM articles
		WHERE credibility_score IS NULL ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// UpdateArticleScore stores the credibility result for an article.
func (db *DB) UpdateArticleScore(id int64, score, confidence float64) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET credibility_score = ?, score_confidence = ? WHERE id = ?",
		score, confidence, id,
	)
	return err
}

// GetUnsummarizedArticles returns articles without a summary.
func (db *DB) GetUnsummarizedArticles() ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT ` + articleColumns + ` FROM articles
		WHERE summary IS NULL ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// UpdateArticleSummary stores the generated summary for an article.
func (db *DB) UpdateArticleSummary(id int64, summary string) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET summary = ? WHERE id = ?", summary, id,
	)
	return err
}

// DistinctCategories returns all non-empty categories in the store.
func (db *DB) DistinctCategories() ([]string, error) {
	return db.distinctColumn("category")
}

// DistinctSources returns all non-empty sources in the store.
func (db *DB) DistinctSources() ([]string, error) {
	return db.distinctColumn("source")
}

func (db *DB) distinctColumn(column string) ([]string, error) {
	rows, err := db.conn.Query(
		"SELECT DISTINCT " + column + " FROM articles WHERE " + column +
			" IS NOT NULL AND " + column + " != '' ORDER BY " + column,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		a, err := scanArticleRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

func scanArticle(row *sql.Row) (*Article, error) {
	return scanArticleRow(row.Scan)
}

func scanArticleRow(scan func(...any) error) (*Article, error) {
	var a Article
	var fetched int
	var tags *string
	if err := scan(&a.ID, &a.URL, &a.Title, &a.Source, &a.Author, &a.Category, &tags,
		&a.ImageURL, &a.PublishedDate, &a.Content, &fetched, &a.Summary,
		&a.CredibilityScore, &a.ScoreConfidence, &a.CollectedAt); err != nil {
		return nil, err
	}
	a.ContentFetched = fetched != 0
	a.Tags = unmarshalTags(tags)
	return &a, nil
}

func marshalTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func unmarshalTags(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return nil
	}
	return tags
}

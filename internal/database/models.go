package database

// Article represents a stored news article. Enrichment fields (Summary,
// CredibilityScore, ScoreConfidence) are nil until the corresponding
// pipeline stage has run.
type Article struct {
	ID               int64
	URL              string
	Title            string
	Source           *string
	Author           *string
	Category         *string
	Tags             []string
	ImageURL         *string
	PublishedDate    *string
	Content          *string
	ContentFetched   bool
	Summary          *string
	CredibilityScore *float64
	ScoreConfidence  *float64
	CollectedAt      *string
}

// SourceCount is an article count for a single source.
type SourceCount struct {
	Source string
	Count  int
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalArticles      int
	RecentArticles     int
	ScoredArticles     int
	SummarizedArticles int
	TopSources         []SourceCount
}

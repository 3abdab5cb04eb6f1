package database

// GetStats returns aggregate statistics for the article store.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM articles", &s.TotalArticles},
		{"SELECT COUNT(*) FROM articles WHERE collected_at >= datetime('now', '-1 day')", &s.RecentArticles},
		{"SELECT COUNT(*) FROM articles WHERE credibility_score IS NOT NULL", &s.ScoredArticles},
		{"SELECT COUNT(*) FROM articles WHERE summary IS NOT NULL", &s.SummarizedArticles},
	}
	for _, c := range counts {
		if err := db.conn.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := db.conn.Query(
		`SELECT source, COUNT(*) AS n FROM articles
		WHERE source IS NOT NULL AND source != ''
		GROUP BY source ORDER BY n DESC LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		s.TopSources = append(s.TopSources, sc)
	}
	return s, rows.Err()
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/anandvardhan09/AI-News-Aggregator/internal/collect"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/config"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/credibility"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/database"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/pipeline"
	"github.com/anandvardhan09/AI-News-Aggregator/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "newsagg",
	Short:   "AI news aggregation with credibility scoring",
	Long:    "newsagg collects news from RSS feeds, scores article credibility, summarizes content, and serves it over a JSON API.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// API keys may live in a local .env file.
		_ = godotenv.Load()

		// Skip config loading for commands that don't need one
		if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "score" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("newsagg", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/newsagg/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds and summarization API keys.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Articles:")
		fmt.Printf("  Total collected: %d\n", stats.TotalArticles)
		fmt.Printf("  Collected in last 24h: %d\n", stats.RecentArticles)
		fmt.Printf("  Scored: %d\n", stats.ScoredArticles)
		fmt.Printf("  Summarized: %d\n", stats.SummarizedArticles)

		if len(stats.TopSources) > 0 {
			fmt.Println("\nTop sources:")
			for _, sc := range stats.TopSources {
				fmt.Printf("  %s: %d\n", sc.Source, sc.Count)
			}
		}
		return nil
	},
}

// --- collect command ---

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect articles from configured feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Collecting articles from feeds...")

		collector := collect.NewCollector(cfg, db)
		result := collector.Collect()

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  New articles: %d\n", result.NewArticles)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Sources) > 0 {
			fmt.Println("\nArticles by source:")
			// Sort sources by count descending
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range result.Sources {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}
		return nil
	},
}

// --- run command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect -> fetch -> score -> summarize",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		result := pipeline.New(cfg, db).Run(context.Background())

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/4: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		fmt.Println("\nPipeline complete! Run 'newsagg serve' to query the API.")
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		if spec := cfg.Server.RefreshCron; spec != "" {
			c := cron.New()
			_, err := c.AddFunc(spec, func() {
				log.Println("Scheduled refresh starting...")
				result := pipeline.New(cfg, db).Run(context.Background())
				for _, step := range result.Steps {
					if step.Err != nil {
						log.Printf("Scheduled refresh step %s failed: %v", step.Name, step.Err)
					}
				}
			})
			if err != nil {
				return fmt.Errorf("invalid refresh_cron %q: %w", spec, err)
			}
			c.Start()
			defer c.Stop()
			fmt.Printf("Background refresh scheduled: %s\n", spec)
		}

		fmt.Printf("Starting server at http://localhost:%d\n", cfg.Server.Port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(cfg, db)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

// --- score command ---

var scoreCmd = &cobra.Command{
	Use:   "score [title] [content]",
	Short: "Score a single piece of text for credibility",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		content := ""
		if len(args) > 1 {
			content = args[1]
		}

		result := credibility.Detect(title, content)
		fmt.Printf("Credibility score: %.2f\n", result.Score)
		fmt.Printf("Confidence: %.2f\n", result.Confidence)

		switch {
		case result.Score >= 0.7:
			fmt.Println("Assessment: likely credible")
		case result.Score >= 0.4:
			fmt.Println("Assessment: mixed signals")
		default:
			fmt.Println("Assessment: low credibility")
		}
		return nil
	},
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "newsagg.db")
	return database.Open(dbPath)
}

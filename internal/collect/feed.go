package collect

import (
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const maxTags = 5

// FeedEntry represents a parsed feed entry mapped to article fields.
type FeedEntry struct {
	URL           string
	Title         string
	PublishedDate string // YYYY-MM-DD or empty
	Content       string
	Source        string
	Author        string
	Category      string
	Tags          []string
	ImageURL      string
}

// FeedConfig represents a single feed configuration.
type FeedConfig struct {
	URL  string
	Name string
}

// FeedParser parses RSS/Atom feeds.
type FeedParser struct {
	feeds      []FeedConfig
	perFeedCap int
}

// NewFeedParser creates a new FeedParser. perFeedCap bounds how many
// entries are taken from each feed.
func NewFeedParser(feeds []FeedConfig, perFeedCap int) *FeedParser {
	if perFeedCap <= 0 {
		perFeedCap = 10
	}
	return &FeedParser{feeds: feeds, perFeedCap: perFeedCap}
}

// ParseAll parses all configured feeds and returns their entries.
func (fp *FeedParser) ParseAll() []FeedEntry {
	var all []FeedEntry

	parser := gofeed.NewParser()
	for _, fc := range fp.feeds {
		name := fc.Name
		if name == "" {
			name = extractSourceName(fc.URL)
		}

		entries, err := parseFeed(parser, fc.URL, name, fp.perFeedCap)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", fc.URL, err)
			continue
		}
		all = append(all, entries...)
		log.Printf("Parsed %d entries from %s", len(entries), name)
	}

	return all
}

func parseFeed(parser *gofeed.Parser, feedURL, sourceName string, limit int) ([]FeedEntry, error) {
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, err
	}

	var entries []FeedEntry
	for _, item := range feed.Items {
		if len(entries) >= limit {
			break
		}

		entry := parseItem(item, sourceName)
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	return entries, nil
}

func parseItem(item *gofeed.Item, source string) *FeedEntry {
	itemURL := item.Link
	if itemURL == "" {
		itemURL = item.GUID
	}
	if itemURL == "" {
		return nil
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return nil
	}

	var publishedDate string
	if item.PublishedParsed != nil {
		publishedDate = item.PublishedParsed.Format("2006-01-02")
	} else if item.UpdatedParsed != nil {
		publishedDate = item.UpdatedParsed.Format("2006-01-02")
	}

	// Prefer full content over the description snippet.
	rawContent := item.Content
	if rawContent == "" {
		rawContent = item.Description
	}

	return &FeedEntry{
		URL:           itemURL,
		Title:         title,
		PublishedDate: publishedDate,
		Content:       htmlToText(rawContent),
		Source:        source,
		Author:        extractAuthor(item),
		Category:      extractCategory(item),
		Tags:          extractTags(item),
		ImageURL:      extractImage(item),
	}
}

// htmlToText strips markup from feed HTML and normalizes whitespace.
func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func extractAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return strings.TrimSpace(item.Authors[0].Name)
	}
	if item.Author != nil {
		return strings.TrimSpace(item.Author.Name)
	}
	return ""
}

func extractCategory(item *gofeed.Item) string {
	if len(item.Categories) > 0 {
		return strings.TrimSpace(item.Categories[0])
	}
	return ""
}

func extractTags(item *gofeed.Item) []string {
	var tags []string
	for _, c := range item.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		tags = append(tags, c)
		if len(tags) >= maxTags {
			break
		}
	}
	return tags
}

// extractImage finds an article image from the item image, enclosures,
// or the first <img> in the content HTML.
func extractImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	html := item.Content
	if html == "" {
		html = item.Description
	}
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

func extractSourceName(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	host := strings.ToLower(u.Hostname())

	for _, prefix := range []string{"www.", "blog.", "blogs.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		name := parts[len(parts)-2]
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return strings.ToUpper(host[:1]) + host[1:]
}

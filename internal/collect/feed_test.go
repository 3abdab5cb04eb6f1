package collect

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"tags stripped", "<p>hello <b>world</b></p>", "hello world"},
		{"entities decoded", "fish &amp; chips", "fish & chips"},
		{"whitespace normalized", "<div>\n  spaced\n\n  out  </div>", "spaced out"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlToText(tt.html); got != tt.want {
				t.Errorf("htmlToText(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestParseItemMapsFields(t *testing.T) {
	published := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "  Budget approved  ",
		Link:            "https://example.com/budget",
		PublishedParsed: &published,
		Description:     "<p>The council approved the budget.</p>",
		Categories:      []string{"Politics", "Local", "", "Economy"},
		Author:          &gofeed.Person{Name: "Jane Reporter"},
	}

	entry := parseItem(item, "BBC")
	if entry == nil {
		t.Fatal("expected entry")
	}
	if entry.Title != "Budget approved" {
		t.Errorf("Title = %q", entry.Title)
	}
	if entry.PublishedDate != "2026-08-20" {
		t.Errorf("PublishedDate = %q", entry.PublishedDate)
	}
	if entry.Content != "The council approved the budget." {
		t.Errorf("Content = %q", entry.Content)
	}
	if entry.Category != "Politics" {
		t.Errorf("Category = %q", entry.Category)
	}
	if len(entry.Tags) != 3 {
		t.Errorf("Tags = %v, want 3 entries", entry.Tags)
	}
	if entry.Author != "Jane Reporter" {
		t.Errorf("Author = %q", entry.Author)
	}
	if entry.Source != "BBC" {
		t.Errorf("Source = %q", entry.Source)
	}
}

func TestParseItemRejectsMissingFields(t *testing.T) {
	if parseItem(&gofeed.Item{Title: "No link"}, "X") != nil {
		t.Error("expected nil for item without URL")
	}
	if parseItem(&gofeed.Item{Link: "https://example.com"}, "X") != nil {
		t.Error("expected nil for item without title")
	}
}

func TestParseItemFallsBackToGUID(t *testing.T) {
	entry := parseItem(&gofeed.Item{Title: "T", GUID: "https://example.com/guid"}, "X")
	if entry == nil || entry.URL != "https://example.com/guid" {
		t.Errorf("expected GUID fallback, got %+v", entry)
	}
}

func TestExtractImage(t *testing.T) {
	fromEnclosure := &gofeed.Item{
		Enclosures: []*gofeed.Enclosure{
			{URL: "https://example.com/a.mp3", Type: "audio/mpeg"},
			{URL: "https://example.com/a.jpg", Type: "image/jpeg"},
		},
	}
	if got := extractImage(fromEnclosure); got != "https://example.com/a.jpg" {
		t.Errorf("enclosure image = %q", got)
	}

	fromContent := &gofeed.Item{
		Content: `<p>text</p><img src="https://example.com/inline.png"><img src="https://example.com/second.png">`,
	}
	if got := extractImage(fromContent); got != "https://example.com/inline.png" {
		t.Errorf("content image = %q", got)
	}

	if got := extractImage(&gofeed.Item{Description: "no images here"}); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestExtractSourceName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://feeds.npr.org/1001/rss.xml", "Npr"},
		{"https://www.theguardian.com/international/rss", "Theguardian"},
		{"https://techcrunch.com/feed/", "Techcrunch"},
	}
	for _, tt := range tests {
		if got := extractSourceName(tt.url); got != tt.want {
			t.Errorf("extractSourceName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

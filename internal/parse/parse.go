// ABOUTME: RSS/Atom normalization for fetched feed bodies using gofeed
// ABOUTME: Produces compact previews attached to fetch payloads and CLI output

package parse

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/harper/rsshub-mcp/internal/content"
)

// ParsedFeed is a normalized feed: the channel metadata plus its items.
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Items       []Item
}

// Item is a normalized feed item.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Author      string
	PublishedAt *time.Time
	Content     string
	Categories  []string
}

// Preview summarizes a feed for tool payloads: channel metadata, the total
// item count, and the first items with content reduced to short Markdown.
type Preview struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Link        string        `json:"link,omitempty"`
	ItemCount   int           `json:"item_count"`
	Items       []PreviewItem `json:"items,omitempty"`
}

// PreviewItem is one summarized feed item.
type PreviewItem struct {
	Title      string   `json:"title,omitempty"`
	Link       string   `json:"link,omitempty"`
	Author     string   `json:"author,omitempty"`
	Published  string   `json:"published,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Parse parses RSS, Atom, or JSON Feed data into a normalized ParsedFeed.
func Parse(data []byte) (*ParsedFeed, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}

	parsed := &ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
		Items:       make([]Item, 0, len(feed.Items)),
	}

	for _, raw := range feed.Items {
		item := Item{
			GUID:       raw.GUID,
			Title:      raw.Title,
			Link:       raw.Link,
			Categories: raw.Categories,
		}

		// Fallback GUID to Link if empty
		if item.GUID == "" {
			item.GUID = raw.Link
		}

		if raw.Author != nil {
			item.Author = raw.Author.Name
		}

		// Use PublishedParsed or fallback to UpdatedParsed
		if raw.PublishedParsed != nil {
			item.PublishedAt = raw.PublishedParsed
		} else if raw.UpdatedParsed != nil {
			item.PublishedAt = raw.UpdatedParsed
		}

		// Prefer Content over Description
		if raw.Content != "" {
			item.Content = raw.Content
		} else {
			item.Content = raw.Description
		}
		item.Content = strings.TrimSpace(item.Content)

		parsed.Items = append(parsed.Items, item)
	}

	return parsed, nil
}

// Preview reduces the feed to at most limit items. summaryLimit caps each
// item summary in runes after HTML is converted to Markdown; zero or
// negative means no cap. ItemCount always reports the full item total.
func (f *ParsedFeed) Preview(limit, summaryLimit int) Preview {
	preview := Preview{
		Title:       f.Title,
		Description: f.Description,
		Link:        f.Link,
		ItemCount:   len(f.Items),
	}

	items := f.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	for _, item := range items {
		p := PreviewItem{
			Title:      item.Title,
			Link:       item.Link,
			Author:     item.Author,
			Summary:    content.Summarize(item.Content, summaryLimit),
			Categories: item.Categories,
		}
		if item.PublishedAt != nil {
			p.Published = item.PublishedAt.UTC().Format(time.RFC3339)
		}
		preview.Items = append(preview.Items, p)
	}

	return preview
}

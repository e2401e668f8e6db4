// ABOUTME: OPML 2.0 document building and writing for subscription export
// ABOUTME: Groups feeds into folder outlines and serializes round-trippable XML

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Document is an OPML document: a title plus a flat-or-foldered outline tree.
type Document struct {
	Title    string
	Outlines []Outline
}

// Outline is one node in the OPML tree: a folder (Children) or a feed (XMLURL).
type Outline struct {
	Text     string
	Title    string
	Type     string
	XMLURL   string
	Children []Outline
}

// Feed is a flattened view of one feed outline with its folder.
type Feed struct {
	URL    string
	Title  string
	Folder string
}

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// NewDocument creates an empty OPML document with the given title.
func NewDocument(title string) *Document {
	return &Document{
		Title:    title,
		Outlines: []Outline{},
	}
}

// AddFeed appends a feed outline, creating the folder outline on first use.
// An empty folder places the feed at the root. A URL that is already present
// is skipped, so repeated exports of the same set stay stable.
func (d *Document) AddFeed(url, title, folder string) {
	for _, feed := range d.AllFeeds() {
		if feed.URL == url {
			return
		}
	}

	feed := Outline{
		Text:   title,
		Title:  title,
		Type:   "rss",
		XMLURL: url,
	}

	if folder == "" {
		d.Outlines = append(d.Outlines, feed)
		return
	}

	for i, outline := range d.Outlines {
		if outline.XMLURL == "" && outline.Text == folder {
			d.Outlines[i].Children = append(d.Outlines[i].Children, feed)
			return
		}
	}
	d.Outlines = append(d.Outlines, Outline{
		Text:     folder,
		Children: []Outline{feed},
	})
}

// AllFeeds returns a flat list of every feed outline with folder information.
func (d *Document) AllFeeds() []Feed {
	feeds := make([]Feed, 0, len(d.Outlines))
	for _, outline := range d.Outlines {
		feeds = append(feeds, collectFeeds(outline, "")...)
	}
	return feeds
}

// Parse reads OPML data from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	var doc opmlXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	out := &Document{
		Title:    doc.Head.Title,
		Outlines: make([]Outline, len(doc.Body.Outlines)),
	}
	for i, outline := range doc.Body.Outlines {
		out.Outlines[i] = outlineFromXML(outline)
	}
	return out, nil
}

// Write serializes the document as OPML 2.0.
func (d *Document) Write(w io.Writer) error {
	doc := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: d.Title},
		Body:    bodyXML{Outlines: make([]outlineXML, len(d.Outlines))},
	}
	for i, outline := range d.Outlines {
		doc.Body.Outlines[i] = outlineToXML(outline)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return d.Write(file)
}

func outlineFromXML(x outlineXML) Outline {
	o := Outline{
		Text:   x.Text,
		Title:  x.Title,
		Type:   x.Type,
		XMLURL: x.XMLURL,
	}
	for _, child := range x.Children {
		o.Children = append(o.Children, outlineFromXML(child))
	}
	return o
}

func outlineToXML(o Outline) outlineXML {
	x := outlineXML{
		Text:   o.Text,
		Title:  o.Title,
		Type:   o.Type,
		XMLURL: o.XMLURL,
	}
	for _, child := range o.Children {
		x.Children = append(x.Children, outlineToXML(child))
	}
	return x
}

func collectFeeds(outline Outline, folder string) []Feed {
	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		return []Feed{{URL: outline.XMLURL, Title: title, Folder: folder}}
	}

	var feeds []Feed
	for _, child := range outline.Children {
		feeds = append(feeds, collectFeeds(child, outline.Text)...)
	}
	return feeds
}

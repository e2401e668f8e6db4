// ABOUTME: Content processing utilities for feed item bodies
// ABOUTME: Detects HTML, converts to Markdown, and produces bounded summaries

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// whitespaceRun collapses newline-heavy converter output for summaries.
var whitespaceRun = regexp.MustCompile(`\s+`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown.
// If the content doesn't appear to be HTML, returns it unchanged.
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}

	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}

	return strings.TrimSpace(markdown)
}

// Summarize renders content as a single-line Markdown summary of at most
// limit runes. Zero or negative limit means unbounded.
func Summarize(content string, limit int) string {
	s := ToMarkdown(content)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return Truncate(strings.TrimSpace(s), limit)
}

// Truncate cuts s to at most limit runes, appending an ellipsis when
// anything was removed. Zero or negative limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

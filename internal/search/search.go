// ABOUTME: Substring search over the flattened route catalog
// ABOUTME: Case-insensitive match across route and namespace metadata, stable order, capped count

package search

import (
	"strings"

	"github.com/harper/rsshub-mcp/internal/models"
)

// Filter returns the routes whose metadata contains query, preserving input
// order. A route matches when any of namespace key, namespace display name,
// route name, path, description, or website URL contains the lower-cased
// query as a substring, or when any category tag does. The empty query is a
// substring of everything, so it matches every route. A positive limit caps
// the result count; zero or negative means unlimited.
func Filter(routes []models.Route, query string, limit int) []models.Route {
	needle := strings.ToLower(query)

	var matches []models.Route
	for _, route := range routes {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if matchesRoute(route, needle) {
			matches = append(matches, route)
		}
	}
	return matches
}

func matchesRoute(route models.Route, needle string) bool {
	for _, field := range []string{
		route.Namespace,
		route.NamespaceName,
		route.Name,
		route.Path,
		route.Description,
		route.URL,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, tag := range route.Categories {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

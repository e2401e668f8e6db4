// ABOUTME: Route model representing one feed-generation endpoint on an RSSHub instance
// ABOUTME: Flattened from the nested namespace catalog returned by /api/namespace

package models

import "strings"

// Route is a single discoverable route, flattened from the namespace catalog.
// Path is the route key as published by the instance, relative to its
// namespace; Example holds a sample invocation path with concrete parameter
// values filled in.
type Route struct {
	Path          string            `json:"path"`
	Name          string            `json:"name,omitempty"`
	URL           string            `json:"url,omitempty"`
	Maintainers   []string          `json:"maintainers,omitempty"`
	Example       string            `json:"example,omitempty"`
	Parameters    map[string]string `json:"parameters,omitempty"`
	Description   string            `json:"description,omitempty"`
	Categories    []string          `json:"categories,omitempty"`
	Namespace     string            `json:"namespace"`
	NamespaceName string            `json:"namespace_name,omitempty"`
}

// FullPath returns the invocable route pattern with the namespace prefix,
// e.g. "/bilibili/user/video/:uid".
func (r Route) FullPath() string {
	path := r.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + r.Namespace + path
}

// ABOUTME: Remote catalog client that fetches and flattens the RSSHub namespace listing
// ABOUTME: Turns the nested /api/namespace response into a flat list of Route records

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/models"
)

// ErrUpstreamUnavailable marks catalog fetches that failed on the network,
// timed out, or returned something other than a 2xx JSON document.
var ErrUpstreamUnavailable = errors.New("rsshub instance unavailable")

// Client fetches the route catalog from an RSSHub instance.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a catalog client for the given instance base URL. The
// caller owns the http.Client and its timeout.
func NewClient(base string, httpClient *http.Client) *Client {
	return &Client{base: base, http: httpClient}
}

// namespaceInfo mirrors one value of the /api/namespace response. Route
// descriptors keep parameters as raw values because instances publish both
// plain strings and richer objects there.
type namespaceInfo struct {
	Name        string               `json:"name"`
	URL         string               `json:"url"`
	Description string               `json:"description"`
	Categories  []string             `json:"categories"`
	Routes      map[string]routeInfo `json:"routes"`
}

type routeInfo struct {
	Name        string                     `json:"name"`
	URL         string                     `json:"url"`
	Maintainers []string                   `json:"maintainers"`
	Example     string                     `json:"example"`
	Parameters  map[string]json.RawMessage `json:"parameters"`
	Description string                     `json:"description"`
	Categories  []string                   `json:"categories"`
}

// FetchNamespaces retrieves the namespace catalog and flattens it into one
// Route per (namespace, route path) pair. Namespaces and routes are emitted
// in sorted key order so a snapshot is deterministic and grouped by
// namespace.
func (c *Client) FetchNamespaces(ctx context.Context) ([]models.Route, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/namespace", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog endpoint returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, config.MaxResponseBytes+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog body: %v", ErrUpstreamUnavailable, err)
	}
	if int64(len(body)) > config.MaxResponseBytes {
		return nil, fmt.Errorf("%w: catalog response exceeds %d bytes", ErrUpstreamUnavailable, config.MaxResponseBytes)
	}

	var namespaces map[string]namespaceInfo
	if err := json.Unmarshal(body, &namespaces); err != nil {
		return nil, fmt.Errorf("%w: malformed catalog JSON: %v", ErrUpstreamUnavailable, err)
	}

	return flatten(namespaces), nil
}

func flatten(namespaces map[string]namespaceInfo) []models.Route {
	nsKeys := make([]string, 0, len(namespaces))
	for key := range namespaces {
		nsKeys = append(nsKeys, key)
	}
	sort.Strings(nsKeys)

	var routes []models.Route
	for _, nsKey := range nsKeys {
		ns := namespaces[nsKey]

		pathKeys := make([]string, 0, len(ns.Routes))
		for path := range ns.Routes {
			pathKeys = append(pathKeys, path)
		}
		sort.Strings(pathKeys)

		for _, path := range pathKeys {
			info := ns.Routes[path]
			route := models.Route{
				Path:          path,
				Name:          info.Name,
				URL:           info.URL,
				Maintainers:   info.Maintainers,
				Example:       info.Example,
				Parameters:    parameterDescriptions(info.Parameters),
				Description:   info.Description,
				Categories:    info.Categories,
				Namespace:     nsKey,
				NamespaceName: ns.Name,
			}
			if route.URL == "" {
				route.URL = ns.URL
			}
			if len(route.Categories) == 0 {
				route.Categories = ns.Categories
			}
			routes = append(routes, route)
		}
	}
	return routes
}

// parameterDescriptions coerces the mixed-type parameter docs published by
// instances into plain strings. Object-shaped values contribute their
// description field; anything undecodable is dropped.
func parameterDescriptions(raw map[string]json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	params := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			params[key] = s
			continue
		}
		var obj struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(value, &obj); err == nil && obj.Description != "" {
			params[key] = obj.Description
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

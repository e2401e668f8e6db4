// ABOUTME: MCP resource providers for rsshub-mcp
// ABOUTME: Exposes read-only views of the subscription set and instance state

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/rsshub-mcp/internal/config"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	ResourceURI string    `json:"resource_uri"`
}

// InstanceData describes the configured instance and catalog cache state.
type InstanceData struct {
	Instance       string      `json:"instance"`
	PublicInstance bool        `json:"public_instance"`
	StorePath      string      `json:"store_path"`
	Catalog        CatalogInfo `json:"catalog"`
}

// CatalogInfo reports the in-memory catalog snapshot without refreshing it.
type CatalogInfo struct {
	Cached    bool       `json:"cached"`
	Routes    int        `json:"routes"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	TTL       string     `json:"ttl"`
}

func (s *Server) registerResources() {
	s.registerSubscriptionsResource()
	s.registerInstanceResource()
}

func (s *Server) registerSubscriptionsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "rsshub://subscriptions",
			Name:        "Subscriptions",
			Description: "All saved RSSHub route subscriptions with ids, routes, display names, and stored default parameters",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			resourceData, err := s.subscriptionsResourceData()
			if err != nil {
				return nil, err
			}
			return marshalResource(request.Params.URI, resourceData)
		},
	)
}

func (s *Server) registerInstanceResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "rsshub://instance",
			Name:        "Instance",
			Description: "The configured RSSHub instance base URL, whether it is the rate-limited public deployment, and the state of the cached route catalog",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return marshalResource(request.Params.URI, s.instanceResourceData())
		},
	)
}

func (s *Server) subscriptionsResourceData() (*ResourceData, error) {
	subs, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   time.Now(),
			Count:       len(subs),
			ResourceURI: "rsshub://subscriptions",
		},
		Data: subs,
		Links: map[string]string{
			"instance": "rsshub://instance",
		},
	}, nil
}

func (s *Server) instanceResourceData() *ResourceData {
	info := CatalogInfo{TTL: config.CacheTTL.String()}
	if count, fetchedAt, ok := s.cache.Stats(); ok {
		info.Cached = true
		info.Routes = count
		info.FetchedAt = &fetchedAt
	}

	return &ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   time.Now(),
			Count:       info.Routes,
			ResourceURI: "rsshub://instance",
		},
		Data: InstanceData{
			Instance:       s.cfg.Instance,
			PublicInstance: s.cfg.IsDefaultInstance(),
			StorePath:      s.store.Path(),
			Catalog:        info,
		},
		Links: map[string]string{
			"subscriptions": "rsshub://subscriptions",
		},
	}
}

func marshalResource(uri string, data *ResourceData) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

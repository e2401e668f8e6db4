// ABOUTME: Tests for the debug API router and handlers
// ABOUTME: Drives the chi router with httptest requests against a fake instance

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harper/rsshub-mcp/internal/catalog"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/store"
)

const namespacePayload = `{
  "github": {
    "name": "GitHub",
    "url": "github.com",
    "routes": {
      "/issue/:user/:repo": {
        "name": "Repo Issues",
        "example": "/github/issue/golang/go"
      }
    }
  }
}`

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Go Issues</title>
    <link>https://github.com/golang/go/issues</link>
    <description>open issues</description>
    <item>
      <guid>issue-1</guid>
      <title>first issue</title>
      <link>https://github.com/golang/go/issues/1</link>
    </item>
  </channel>
</rss>`

// testEnv wires the router to an httptest instance and a temp store.
func testEnv(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/namespace", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, namespacePayload)
	})
	mux.HandleFunc("/github/issue/golang/go", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	})
	instance := httptest.NewServer(mux)
	t.Cleanup(instance.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	httpClient := &http.Client{Timeout: 5 * time.Second}

	cache := catalog.NewCache(catalog.NewClient(instance.URL, httpClient), time.Hour, time.Now, logger)
	st := store.New(t.TempDir() + "/subscriptions.json")
	fc := fetcher.New(instance.URL, httpClient, logger)

	return NewRouter(NewHandler(cache, st, fc, logger), logger), st
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := testEnv(t)

	for _, target := range []string{"/health/live", "/health/ready"} {
		w := get(t, router, target)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", target, w.Code)
		}
		if w.Body.String() != `{"status":"ok"}` {
			t.Errorf("%s body = %q", target, w.Body.String())
		}
	}
}

func TestSearchRoutes(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/routes/search?q=github")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Routes[0].FullPath() != "/github/issue/:user/:repo" {
		t.Errorf("route = %q", resp.Routes[0].FullPath())
	}
}

func TestSearchRoutes_MissingQuery(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/routes/search")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearchRoutes_NoMatchesReturnsEmptyList(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/routes/search?q=nomatch")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 0 || resp.Routes == nil {
		t.Errorf("want count 0 with an empty (not null) routes list, got %+v", resp)
	}
}

func TestListSubscriptions(t *testing.T) {
	router, st := testEnv(t)

	w := get(t, router, "/api/subscriptions")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp subscriptionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}

	if _, _, err := st.Subscribe("/github/issue/golang/go", "go issues", nil); err != nil {
		t.Fatal(err)
	}

	w = get(t, router, "/api/subscriptions")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || resp.Subscriptions[0].Route != "/github/issue/golang/go" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestFeed(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/feed?route=/github/issue/golang/go")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp feedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("upstream status = %d", resp.Status)
	}
	if resp.Preview == nil || resp.Preview.Title != "Go Issues" {
		t.Errorf("preview = %+v", resp.Preview)
	}
}

func TestFeed_MissingRoute(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/feed")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFeed_UpstreamFailure(t *testing.T) {
	router, _ := testEnv(t)

	w := get(t, router, "/api/feed?route=/missing/route")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	var resp feedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Diagnostic == nil || resp.Diagnostic.Kind != fetcher.KindRouteNotFound {
		t.Errorf("diagnostic = %+v", resp.Diagnostic)
	}
}

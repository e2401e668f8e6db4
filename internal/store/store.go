// ABOUTME: JSON-file subscription store with whole-collection read-modify-write semantics
// ABOUTME: Atomic replace on save, idempotent subscribe, selector-based unsubscribe

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/rsshub-mcp/internal/models"
)

var (
	// ErrCorrupt marks a subscription file that exists but does not decode.
	ErrCorrupt = errors.New("subscription file is corrupt")
	// ErrIO marks a failed read or write of the subscription file.
	ErrIO = errors.New("subscription store I/O failed")
	// ErrNoSelector is returned by Unsubscribe when neither id nor route is given.
	ErrNoSelector = errors.New("unsubscribe requires an id or a route")
)

// Store persists subscriptions as a single pretty-printed JSON array. Every
// operation reads and writes the whole file; there is no cross-process
// locking, so the last writer wins.
type Store struct {
	path string
}

// New creates a store backed by the JSON file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full subscription list. A missing file is an empty list,
// not an error.
func (s *Store) Load() ([]models.Subscription, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Subscription{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	var subs []models.Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	return subs, nil
}

// Save overwrites the file with the given list, creating the parent
// directory if needed. The replace is atomic: content lands in a temp file
// that is renamed over the target, so readers never observe a partial write.
func (s *Store) Save(subs []models.Subscription) error {
	if subs == nil {
		subs = []models.Subscription{}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrIO, err)
	}
	data = append(data, '\n')

	if err := replaceFile(s.path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// List returns every stored subscription.
func (s *Store) List() ([]models.Subscription, error) {
	return s.Load()
}

// Subscribe adds a subscription for route unless one already exists. Routes
// are canonicalized to a leading-slash form on write; comparison is an exact
// string match on the canonical form. The boolean reports whether a new
// record was created; an existing record comes back unchanged.
func (s *Store) Subscribe(route, name string, params map[string]string) (models.Subscription, bool, error) {
	route = NormalizeRoute(route)

	subs, err := s.Load()
	if err != nil {
		return models.Subscription{}, false, err
	}

	for _, sub := range subs {
		if sub.Route == route {
			return sub, false, nil
		}
	}

	sub := models.NewSubscription(route, name, params)
	subs = append(subs, sub)
	if err := s.Save(subs); err != nil {
		return models.Subscription{}, false, err
	}
	return sub, true, nil
}

// Unsubscribe removes every entry matching the selector and reports how many
// were removed. When both selectors are supplied, id wins and route is
// ignored. The file is rewritten only when something was actually removed.
func (s *Store) Unsubscribe(id, route string) (int, error) {
	route = NormalizeRoute(route)
	if id == "" && route == "" {
		return 0, ErrNoSelector
	}

	subs, err := s.Load()
	if err != nil {
		return 0, err
	}

	var kept []models.Subscription
	for _, sub := range subs {
		if matchesSelector(sub, id, route) {
			continue
		}
		kept = append(kept, sub)
	}

	removed := len(subs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.Save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func matchesSelector(sub models.Subscription, id, route string) bool {
	if id != "" {
		return sub.ID == id
	}
	return sub.Route == route
}

// NormalizeRoute canonicalizes a route path: surrounding whitespace is
// trimmed and a leading slash is ensured, so "github/issue/golang/go" and
// "/github/issue/golang/go" address the same subscription.
func NormalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route != "" && !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// replaceFile writes data to a temp file in the target directory, syncs it,
// and renames it over path.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	renamed = true
	return nil
}

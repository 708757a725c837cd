// Package store caches solutions keyed by domain and puzzle text.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/driver"
)

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = errors.New("solution not found")

// Entry is one cached solution.
type Entry struct {
	Domain  string          `json:"domain"`
	Found   bool            `json:"found"`
	Actions []string        `json:"actions"`
	Stats   bestfirst.Stats `json:"stats"`
}

// Store is a solution cache. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
}

// Key fingerprints a puzzle. Equal text in the same domain gives equal keys.
func Key(domain, text string) string {
	d := xxhash.New()
	_, _ = d.WriteString(domain)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(text)
	return domain + ":" + strconv.FormatUint(d.Sum64(), 16)
}

// Solve returns the cached solution for text if there is one, and otherwise
// solves instance and caches the result. A nil store always solves. The
// boolean reports a cache hit.
//
// A failing store does not prevent the solve: the solution is returned
// together with the cache error.
func Solve(ctx context.Context, s Store, instance driver.Instance, text string, options ...bestfirst.Option) (driver.Solution, bool, error) {
	if s == nil {
		return instance.Solve(options...), false, nil
	}
	key := Key(instance.Domain(), text)
	entry, err := s.Get(ctx, key)
	switch {
	case err == nil:
		return driver.Solution{Actions: entry.Actions, Found: entry.Found, Stats: entry.Stats}, true, nil
	case !errors.Is(err, ErrNotFound):
		return instance.Solve(options...), false, fmt.Errorf("cache lookup: %w", err)
	}

	solution := instance.Solve(options...)
	entry = &Entry{
		Domain:  instance.Domain(),
		Found:   solution.Found,
		Actions: solution.Actions,
		Stats:   solution.Stats,
	}
	if err := s.Put(ctx, key, entry); err != nil {
		return solution, false, fmt.Errorf("cache store: %w", err)
	}
	return solution, false, nil
}

package main

import (
	"context"
	"errors"
	"strings"
)

// foodResolver estimates a food's calories from a free-text description.
// Implementations return a *ResolutionError on failure.
type foodResolver interface {
	ResolveFood(ctx context.Context, description string) (LibraryItem, error)
}

// resolverFunc adapts a plain function to foodResolver.
type resolverFunc func(ctx context.Context, description string) (LibraryItem, error)

func (f resolverFunc) ResolveFood(ctx context.Context, description string) (LibraryItem, error) {
	return f(ctx, description)
}

// ResolutionKind classifies lookup failures for user messaging.
type ResolutionKind string

const (
	ResolutionUnreachable  ResolutionKind = "unreachable"
	ResolutionUnauthorized ResolutionKind = "unauthorized"
	ResolutionTimeout      ResolutionKind = "timeout"
	ResolutionMalformed    ResolutionKind = "malformed"
)

// ResolutionError is returned when a food could not be resolved. Message is
// safe to show to the user; Err carries the underlying cause for logs.
type ResolutionError struct {
	Kind    ResolutionKind
	Message string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func newResolutionError(kind ResolutionKind, message string, err error) *ResolutionError {
	return &ResolutionError{Kind: kind, Message: message, Err: err}
}

// asResolutionError classifies any resolver error. Errors that are not already
// a *ResolutionError are treated as unreachable, except context deadlines.
func asResolutionError(err error) *ResolutionError {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newResolutionError(ResolutionTimeout, "food lookup timed out", err)
	}
	return newResolutionError(ResolutionUnreachable, "food lookup failed", err)
}

// validateLibraryItem checks the shape of a resolved or manually entered item.
func validateLibraryItem(item LibraryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return newResolutionError(ResolutionMalformed, "food name is missing", nil)
	}
	if item.CaloriesPerUnit < 0 {
		return newResolutionError(ResolutionMalformed, "calories must not be negative", nil)
	}
	if strings.TrimSpace(item.Unit) == "" {
		return newResolutionError(ResolutionMalformed, "unit is missing", nil)
	}
	return nil
}

// foodLibrary is an append-only cache of resolved foods keyed by name.
// aliases maps lookup text to the item it resolved to under another name; they
// answer lookups only and never block an item being added under that name.
type foodLibrary struct {
	items   []LibraryItem
	index   map[string]int
	aliases map[string]int
}

func newFoodLibrary(items []LibraryItem) *foodLibrary {
	lib := &foodLibrary{
		index:   make(map[string]int, len(items)),
		aliases: make(map[string]int),
	}
	for _, it := range items {
		lib.insert(it)
	}
	return lib
}

// get returns the item stored under name, falling back to lookup aliases.
func (l *foodLibrary) get(name string) (LibraryItem, bool) {
	i, ok := l.index[name]
	if !ok {
		i, ok = l.aliases[name]
	}
	if !ok {
		return LibraryItem{}, false
	}
	return l.items[i], true
}

// insert adds item unless its name is already present. Existing items are never
// overwritten. Reports whether the item was added.
func (l *foodLibrary) insert(item LibraryItem) bool {
	if _, ok := l.index[item.Name]; ok {
		return false
	}
	l.index[item.Name] = len(l.items)
	l.items = append(l.items, item)
	return true
}

// lookupOrInsert returns the cached item for name, or resolves, validates and
// caches it. On any resolver failure the library is left untouched and the
// error is a *ResolutionError. The second return value reports a cache hit.
//
// The resolved item is stored under its resolved name and, when that differs,
// also answered for the requested name on later calls.
func (l *foodLibrary) lookupOrInsert(ctx context.Context, name string, resolver foodResolver) (LibraryItem, bool, error) {
	if item, ok := l.get(name); ok {
		return item, true, nil
	}
	item, err := resolver.ResolveFood(ctx, name)
	if err != nil {
		return LibraryItem{}, false, asResolutionError(err)
	}
	if err := validateLibraryItem(item); err != nil {
		return LibraryItem{}, false, err
	}
	if existing, ok := l.get(item.Name); ok {
		// Resolved to a name we already know: keep the stored value.
		item = existing
	} else {
		l.insert(item)
	}
	if item.Name != name {
		l.aliases[name] = l.index[item.Name]
	}
	return item, false, nil
}

// suggest returns items whose name contains query (case-sensitive), in
// insertion order. An empty query matches everything.
func (l *foodLibrary) suggest(query string) []LibraryItem {
	out := []LibraryItem{}
	for _, it := range l.items {
		if strings.Contains(it.Name, query) {
			out = append(out, it)
		}
	}
	return out
}

// list returns a copy of all items in insertion order.
func (l *foodLibrary) list() []LibraryItem {
	return append([]LibraryItem{}, l.items...)
}

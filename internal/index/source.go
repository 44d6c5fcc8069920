package index

import (
	"context"
	"os"
)

// SourceKind identifies which index location serves a query.
type SourceKind int

const (
	// SourceNone means no index exists; queries degrade to a live scan.
	SourceNone SourceKind = iota

	// SourceBundle is the read-only pre-built index shipped for offline use.
	SourceBundle

	// SourceCache is the locally built index in the user cache.
	SourceCache
)

func (k SourceKind) String() string {
	switch k {
	case SourceBundle:
		return "bundle"
	case SourceCache:
		return "cache"
	default:
		return "none"
	}
}

// Source is the chosen index location for a query.
type Source struct {
	Kind SourceKind
	Path string
}

// SelectSource picks the index to query, evaluated once per query:
// the offline bundle wins when present and non-empty, then the user
// cache index, then none. An unreadable or empty bundle never shadows
// a usable cache index.
func SelectSource(ctx context.Context, bundlePath, cachePath string) Source {
	if usableIndex(ctx, bundlePath) {
		return Source{Kind: SourceBundle, Path: bundlePath}
	}
	if _, err := os.Stat(cachePath); err == nil {
		return Source{Kind: SourceCache, Path: cachePath}
	}
	return Source{Kind: SourceNone}
}

func usableIndex(ctx context.Context, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	store, err := Open(ctx, path, true)
	if err != nil {
		return false
	}
	defer store.Close()
	empty, err := store.IsEmpty(ctx)
	return err == nil && !empty
}

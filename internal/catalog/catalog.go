// Package catalog loads the collection listing, preferring the bundled
// metadata snapshot over the network.
package catalog

import (
	"context"
	"os"

	"github.com/bingal/iconify-skill/internal/config"
	"github.com/bingal/iconify-skill/internal/fetch"
	"github.com/bingal/iconify-skill/internal/iconset"
)

// Loader resolves the collection listing.
type Loader struct {
	Fetcher *fetch.Client
	Config  *config.Config
	Paths   *config.Paths
}

// Load returns the collection listing. The bundled snapshot is tried
// first so fully offline installs never touch the network; a corrupt
// snapshot falls through to the catalog endpoint.
func (l *Loader) Load(ctx context.Context) (iconset.Collections, error) {
	if data, err := os.ReadFile(l.Paths.BundleMetadataFile()); err == nil {
		if cols, err := iconset.ParseCollections(data); err == nil {
			return cols, nil
		}
	}

	data, err := l.Fetcher.FetchJSON(ctx, l.Config.CollectionsURL())
	if err != nil {
		return nil, err
	}
	return iconset.ParseCollections(data)
}

// LoadRemote fetches the listing from the catalog endpoint, bypassing
// the bundle snapshot. Used when refreshing the bundle itself.
func (l *Loader) LoadRemote(ctx context.Context) (iconset.Collections, error) {
	data, err := l.Fetcher.FetchJSON(ctx, l.Config.CollectionsURL())
	if err != nil {
		return nil, err
	}
	return iconset.ParseCollections(data)
}

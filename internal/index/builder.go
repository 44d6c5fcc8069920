package index

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bingal/iconify-skill/internal/config"
	"github.com/bingal/iconify-skill/internal/iconset"
)

// Fetcher retrieves raw JSON documents, typically fetch.Client.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// CollectionError records a collection that failed to index. A bad
// collection never aborts the rest of the build.
type CollectionError struct {
	Prefix string
	Err    error
}

func (e CollectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Prefix, e.Err)
}

// Report summarizes a build.
type Report struct {
	TotalIndexed int64             // records inserted (or pre-existing when Reused)
	Collections  int               // collections attempted
	SkippedIcons int               // icons skipped due to resolution errors
	Errors       []CollectionError // per-collection soft errors
	BuildID      string
	Reused       bool // true when an existing index was kept (force=false)
}

// Builder populates a Store from the remote catalog.
type Builder struct {
	Fetcher       Fetcher
	CollectionURL func(prefix string) string
	Logger        *slog.Logger
}

// NewBuilder creates a builder using cfg for endpoint URLs.
func NewBuilder(fetcher Fetcher, cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Fetcher:       fetcher,
		CollectionURL: cfg.CollectionURL,
		Logger:        logger,
	}
}

// Build indexes every collection in cols into store.
//
// If the store already holds data and force is false, nothing is
// written and the report carries the prior totals. Otherwise the record
// and token tables are cleared and repopulated inside a single
// transaction, so a concurrent reader sees either the old complete
// index or the new one, never a partial state.
func (b *Builder) Build(ctx context.Context, store *Store, cols iconset.Collections, force bool) (*Report, error) {
	if !force {
		empty, err := store.IsEmpty(ctx)
		if err != nil {
			return nil, err
		}
		if !empty {
			records, _, err := store.Counts(ctx)
			if err != nil {
				return nil, err
			}
			b.Logger.Info("index already populated, skipping build", "records", records)
			return &Report{TotalIndexed: records, Reused: true}, nil
		}
	}

	// Deterministic build order so partial builds and logs reproduce.
	prefixes := make([]string, 0, len(cols))
	for prefix := range cols {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	report := &Report{
		Collections: len(prefixes),
		BuildID:     uuid.NewString(),
	}

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin build transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{`DELETE FROM icons`, `DELETE FROM icons_fts`, `DELETE FROM index_meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to clear index: %w", err)
		}
	}

	insertRecord, err := tx.PrepareContext(ctx,
		`INSERT INTO icons (prefix, name, full_id, aliases, license) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer insertRecord.Close()

	insertToken, err := tx.PrepareContext(ctx,
		`INSERT INTO icons_fts (prefix, name, full_id, tokens) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer insertToken.Close()

	for _, prefix := range prefixes {
		count, skipped, err := b.indexCollection(ctx, insertRecord, insertToken, prefix)
		if err != nil {
			b.Logger.Warn("failed to index collection", "prefix", prefix, "error", err)
			report.Errors = append(report.Errors, CollectionError{Prefix: prefix, Err: err})
			continue
		}
		b.Logger.Info("indexed collection", "prefix", prefix, "icons", count, "skipped", skipped)
		report.TotalIndexed += count
		report.SkippedIcons += skipped
	}

	meta := map[string]string{
		"build_time":  nowRFC3339(),
		"build_id":    report.BuildID,
		"version":     config.Version,
		"collections": fmt.Sprintf("%d", len(prefixes)),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO index_meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return nil, fmt.Errorf("failed to write build metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit index build: %w", err)
	}

	return report, nil
}

// indexCollection fetches one collection document and inserts one record
// plus one token row per icon.
func (b *Builder) indexCollection(ctx context.Context, insertRecord, insertToken *sql.Stmt, prefix string) (count int64, skipped int, err error) {
	data, err := b.Fetcher.FetchJSON(ctx, b.CollectionURL(prefix))
	if err != nil {
		return 0, 0, err
	}

	doc, err := iconset.ParseDocument(data)
	if err != nil {
		return 0, 0, err
	}

	names := make([]string, 0, len(doc.Icons))
	for name := range doc.Icons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		aliases, err := iconset.FlattenAliases(doc, name)
		if err != nil {
			// A parent cycle poisons only this one icon.
			b.Logger.Warn("skipping icon", "id", iconset.FullID(prefix, name), "error", err)
			skipped++
			continue
		}

		fullID := iconset.FullID(prefix, name)
		aliasStr := strings.Join(aliases, " ")
		tokens := name
		if aliasStr != "" {
			tokens = name + " " + aliasStr
		}

		if _, err := insertRecord.ExecContext(ctx, prefix, name, fullID, aliasStr, doc.License.Title); err != nil {
			return 0, 0, fmt.Errorf("failed to insert record %s: %w", fullID, err)
		}
		if _, err := insertToken.ExecContext(ctx, prefix, name, fullID, tokens); err != nil {
			return 0, 0, fmt.Errorf("failed to insert token row %s: %w", fullID, err)
		}
		count++
	}

	return count, skipped, nil
}

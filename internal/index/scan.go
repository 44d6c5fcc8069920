package index

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/bingal/iconify-skill/internal/iconset"
)

// ScanResult is one hit from the degraded live scan. Scan hits carry no
// score: results come back in collection and name order, not ranked order.
type ScanResult struct {
	Prefix string
	Name   string
}

// LiveScan is the degraded search path for when no index exists. It
// fetches each collection document live and tests every icon's name and
// alias set for a case-insensitive substring match, stopping once limit
// matches are found. Collections that fail to fetch are skipped.
//
// This is much slower than an indexed query; callers warn the user
// before taking this path.
func LiveScan(ctx context.Context, fetcher Fetcher, collectionURL func(string) string,
	cols iconset.Collections, query string, limit int, prefixes []string, logger *slog.Logger) ([]ScanResult, error) {

	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	if limit <= 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	wanted := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		wanted[p] = true
	}

	order := make([]string, 0, len(cols))
	for prefix := range cols {
		if len(wanted) > 0 && !wanted[prefix] {
			continue
		}
		order = append(order, prefix)
	}
	sort.Strings(order)

	queryLower := strings.ToLower(query)
	var results []ScanResult

	for _, prefix := range order {
		data, err := fetcher.FetchJSON(ctx, collectionURL(prefix))
		if err != nil {
			logger.Warn("scan skipping collection", "prefix", prefix, "error", err)
			continue
		}
		doc, err := iconset.ParseDocument(data)
		if err != nil {
			logger.Warn("scan skipping collection", "prefix", prefix, "error", err)
			continue
		}

		names := make([]string, 0, len(doc.Icons))
		for name := range doc.Icons {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if !matchesScan(name, doc.Icons[name], queryLower) {
				continue
			}
			results = append(results, ScanResult{Prefix: prefix, Name: name})
			if len(results) >= limit {
				return results, nil
			}
		}
	}

	return results, nil
}

func matchesScan(name string, icon iconset.Icon, queryLower string) bool {
	if strings.Contains(strings.ToLower(name), queryLower) {
		return true
	}
	for alias := range icon.Aliases {
		if strings.Contains(strings.ToLower(alias), queryLower) {
			return true
		}
	}
	return false
}

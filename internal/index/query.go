package index

import (
	"context"
	"fmt"
	"strings"
)

// Result is one ranked search hit. Score is the bm25 rank: lower is a
// better match.
type Result struct {
	Prefix string
	Name   string
	Score  float64
}

// Search runs a ranked full-text query against the index.
//
// The query is tokenized on whitespace and each token matches as a
// prefix of indexed tokens, so "home settings" finds rows whose token
// field contains tokens beginning with both "home" and "settings".
// Results are ordered best-first and truncated to limit. An optional
// prefix filter restricts matches to those collections; unknown
// prefixes simply yield nothing.
func (s *Store) Search(ctx context.Context, query string, limit int, prefixes []string) ([]Result, error) {
	ftsQuery, err := buildMatchExpr(query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	sqlQuery := `
		SELECT prefix, name, bm25(icons_fts) AS score
		FROM icons_fts
		WHERE icons_fts MATCH ?`
	args := []any{ftsQuery}

	if len(prefixes) > 0 {
		placeholders := strings.Repeat("?,", len(prefixes))
		sqlQuery += fmt.Sprintf(" AND prefix IN (%s)", placeholders[:len(placeholders)-1])
		for _, p := range prefixes {
			args = append(args, p)
		}
	}

	sqlQuery += `
		ORDER BY score
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Prefix, &r.Name, &r.Score); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// buildMatchExpr turns a free-text query into an FTS5 MATCH expression.
// Each whitespace token is quoted (neutralizing FTS5 operators) and
// given a wildcard suffix for prefix matching.
func buildMatchExpr(query string) (string, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: query must not be empty", ErrInvalidQuery)
	}

	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		escaped := strings.ReplaceAll(tok, `"`, `""`)
		parts[i] = fmt.Sprintf(`"%s"*`, escaped)
	}
	return strings.Join(parts, " "), nil
}

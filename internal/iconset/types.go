// Package iconset models Iconify collection documents and resolves icon
// parent chains to canonical rendering data.
package iconset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// License describes a collection's license metadata.
type License struct {
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// Collection is one entry in the remote catalog listing.
type Collection struct {
	Name    string  `json:"name,omitempty"`
	Total   int     `json:"total"`
	License License `json:"license"`
}

// Collections maps collection prefix to its catalog metadata.
type Collections map[string]Collection

// Icon is a raw icon entry before parent-chain resolution. An icon with
// a Parent has no rendering body of its own; the body is inherited by
// walking to the chain's terminal ancestor.
type Icon struct {
	Body    string                     `json:"body,omitempty"`
	Parent  string                     `json:"parent,omitempty"`
	Width   int                        `json:"width,omitempty"`
	Height  int                        `json:"height,omitempty"`
	Hidden  bool                       `json:"hidden,omitempty"`
	Aliases map[string]json.RawMessage `json:"aliases,omitempty"`
}

// Document is one collection's full icon data as served by the
// per-collection endpoint.
type Document struct {
	Prefix  string          `json:"prefix"`
	Icons   map[string]Icon `json:"icons"`
	Aliases map[string]Icon `json:"aliases,omitempty"`
	License License         `json:"license"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
}

// ParseDocument decodes a per-collection JSON document. A document
// without an icons table is malformed.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed collection document: %w", err)
	}
	if doc.Icons == nil {
		return nil, fmt.Errorf("collection document missing icons table")
	}
	return &doc, nil
}

// ParseCollections decodes the catalog listing.
func ParseCollections(data []byte) (Collections, error) {
	var cols Collections
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("malformed collections listing: %w", err)
	}
	return cols, nil
}

// FullID composes the globally unique icon identifier.
func FullID(prefix, name string) string {
	return prefix + ":" + name
}

// ParseID splits a "prefix:name" identifier.
func ParseID(id string) (prefix, name string, err error) {
	prefix, name, ok := strings.Cut(id, ":")
	if !ok || prefix == "" || name == "" {
		return "", "", fmt.Errorf("invalid icon id %q: want prefix:name", id)
	}
	return prefix, name, nil
}

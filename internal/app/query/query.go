// Package query turns raw request parameters into typed filter, sort and
// projection descriptors for the book store. Parsing is pure: no side
// effects, output depends only on the input values.
package query

import (
	"net/url"
	"sort"
	"strings"

	"elibrary/internal/domain/model"
)

// Reserved parameter names. Everything else is treated as a per-field filter.
const (
	paramSort   = "sort"
	paramFields = "fields"
)

var filterableFields = map[string]bool{
	"title":       true,
	"author":      true,
	"description": true,
	"genre":       true,
	"language":    true,
	"slug":        true,
	"year":        true,
}

var sortableFields = map[string]bool{
	"title":      true,
	"author":     true,
	"year":       true,
	"genre":      true,
	"language":   true,
	"slug":       true,
	"created_at": true,
}

var projectableFields = map[string]bool{
	"id":          true,
	"title":       true,
	"author":      true,
	"description": true,
	"year":        true,
	"genre":       true,
	"language":    true,
	"slug":        true,
	"owner_id":    true,
	"created_at":  true,
	"updated_at":  true,
}

// Filter is a case-insensitive substring match against a single field.
// Filters combine with AND.
type Filter struct {
	Field string
	Value string
}

type Sort struct {
	Field      string
	Descending bool
}

// Spec is the parsed request: independent filter, sort and projection
// descriptors consumed by the book repository. A nil Sort means insertion
// order; empty Fields means the full document.
type Spec struct {
	Filters []Filter
	Sort    *Sort
	Fields  []string
}

// Parse separates the reserved sort/fields keys from per-field filters.
// Unknown fields and empty values are dropped rather than rejected, matching
// how the store would simply never match them.
func Parse(values url.Values) Spec {
	var spec Spec

	for key, vals := range values {
		if key == paramSort || key == paramFields {
			continue
		}
		if len(vals) == 0 || vals[0] == "" || !filterableFields[key] {
			continue
		}
		spec.Filters = append(spec.Filters, Filter{Field: key, Value: vals[0]})
	}
	// url.Values iterates in random order; keep the spec deterministic.
	sort.Slice(spec.Filters, func(i, j int) bool {
		return spec.Filters[i].Field < spec.Filters[j].Field
	})

	spec.Sort = parseSort(values.Get(paramSort))
	spec.Fields = parseFields(values.Get(paramFields))
	return spec
}

func parseSort(raw string) *Sort {
	if raw == "" {
		return nil
	}
	descending := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	if !sortableFields[field] {
		return nil
	}
	return &Sort{Field: field, Descending: descending}
}

// parseFields returns the validated inclusion list, with id always present.
// An empty or all-invalid list collapses to nil, which callers must treat as
// "no projection" rather than "no fields".
func parseFields(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := map[string]bool{}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || !projectableFields[f] || seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil
	}
	if !seen["id"] {
		fields = append([]string{"id"}, fields...)
	}
	return fields
}

// EscapeLike neutralizes LIKE metacharacters in a user-supplied substring so
// it matches literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Project shapes a book for serialization under an inclusion list, so fields
// outside the projection are absent from the JSON rather than zero-valued.
func Project(b *model.Book, fields []string) map[string]interface{} {
	doc := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			doc["id"] = b.ID
		case "title":
			doc["title"] = b.Title
		case "author":
			doc["author"] = b.Author
		case "description":
			doc["description"] = b.Description
		case "year":
			doc["year"] = b.Year
		case "genre":
			doc["genre"] = b.Genre
		case "language":
			doc["language"] = b.Language
		case "slug":
			doc["slug"] = b.Slug
		case "owner_id":
			doc["owner_id"] = b.OwnerID
		case "created_at":
			doc["created_at"] = b.CreatedAt
		case "updated_at":
			doc["updated_at"] = b.UpdatedAt
		}
	}
	return doc
}

package query

import (
	"net/url"
	"reflect"
	"testing"

	"elibrary/internal/domain/model"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   []Filter
	}{
		{
			name:   "single filter",
			rawURL: "/api/books?author=Tolkien",
			want:   []Filter{{Field: "author", Value: "Tolkien"}},
		},
		{
			name:   "multiple filters sorted by field",
			rawURL: "/api/books?title=dune&author=herbert",
			want: []Filter{
				{Field: "author", Value: "herbert"},
				{Field: "title", Value: "dune"},
			},
		},
		{
			name:   "reserved keys are not filters",
			rawURL: "/api/books?sort=title&fields=title,author&genre=fantasy",
			want:   []Filter{{Field: "genre", Value: "fantasy"}},
		},
		{
			name:   "empty values dropped",
			rawURL: "/api/books?author=&title=dune",
			want:   []Filter{{Field: "title", Value: "dune"}},
		},
		{
			name:   "unknown fields dropped",
			rawURL: "/api/books?publisher=penguin&author=x",
			want:   []Filter{{Field: "author", Value: "x"}},
		},
		{
			name:   "no parameters",
			rawURL: "/api/books",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.rawURL)
			if err != nil {
				t.Fatalf("parse url: %v", err)
			}
			got := Parse(u.Query())
			if !reflect.DeepEqual(got.Filters, tt.want) {
				t.Errorf("Filters = %#v, want %#v", got.Filters, tt.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *Sort
	}{
		{"absent", "", nil},
		{"ascending", "sort=title", &Sort{Field: "title"}},
		{"descending", "sort=-year", &Sort{Field: "year", Descending: true}},
		{"unknown field ignored", "sort=publisher", nil},
		{"descending unknown field ignored", "sort=-publisher", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.raw)
			got := Parse(values)
			if !reflect.DeepEqual(got.Sort, tt.want) {
				t.Errorf("Sort = %#v, want %#v", got.Sort, tt.want)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"absent means full document", "", nil},
		{"explicit list keeps id first", "fields=title,author", []string{"id", "title", "author"}},
		{"id not duplicated", "fields=id,title", []string{"id", "title"}},
		{"duplicates collapsed", "fields=title,title,author", []string{"id", "title", "author"}},
		{"whitespace trimmed", "fields=title, author", []string{"id", "title", "author"}},
		{"unknown fields dropped", "fields=title,publisher", []string{"id", "title"}},
		// The falsy-projection rule: a list that collapses to nothing must
		// behave exactly like no projection at all, never "no fields".
		{"empty value means full document", "fields=", nil},
		{"all-invalid list means full document", "fields=publisher,isbn", nil},
		{"only separators means full document", "fields=,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.raw)
			got := Parse(values)
			if !reflect.DeepEqual(got.Fields, tt.want) {
				t.Errorf("Fields = %#v, want %#v", got.Fields, tt.want)
			}
		})
	}
}

func TestParseIsPure(t *testing.T) {
	values := url.Values{"author": {"tolkien"}, "sort": {"-year"}, "fields": {"title"}}
	first := Parse(values)
	second := Parse(values)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse not deterministic: %#v vs %#v", first, second)
	}
	if !reflect.DeepEqual(values, url.Values{"author": {"tolkien"}, "sort": {"-year"}, "fields": {"title"}}) {
		t.Errorf("Parse mutated its input: %#v", values)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tolkien", "tolkien"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProject(t *testing.T) {
	year := 1965
	owner := "owner-1"
	b := model.Book{
		ID:          "book-1",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Desert planet",
		Year:        &year,
		Genre:       "Sci-Fi",
		Language:    "English",
		Slug:        "dune",
		OwnerID:     &owner,
	}

	doc := Project(&b, []string{"id", "title", "year"})
	if len(doc) != 3 {
		t.Fatalf("expected 3 fields, got %d: %#v", len(doc), doc)
	}
	if doc["id"] != "book-1" || doc["title"] != "Dune" {
		t.Errorf("unexpected projection: %#v", doc)
	}
	if doc["year"] != &year {
		t.Errorf("year not projected: %#v", doc["year"])
	}
	if _, ok := doc["author"]; ok {
		t.Errorf("author should not be projected")
	}
}

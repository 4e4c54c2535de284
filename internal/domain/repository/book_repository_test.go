package repository

import (
	"reflect"
	"strings"
	"testing"

	"elibrary/internal/app/query"
)

func TestBuildListQueryDefault(t *testing.T) {
	sql, args := BuildListQuery(query.Spec{})

	want := "SELECT id, title, author, description, year, genre, language, slug, owner_id, created_at, updated_at" +
		" FROM books ORDER BY created_at ASC, id ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildListQueryFilters(t *testing.T) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Field: "author", Value: "Tolkien"},
			{Field: "title", Value: "ring"},
		},
	}
	sql, args := BuildListQuery(spec)

	wantWhere := " WHERE author ILIKE $1 AND title ILIKE $2 ORDER BY created_at ASC, id ASC"
	if got := sql[len(sql)-len(wantWhere):]; got != wantWhere {
		t.Errorf("sql tail = %q, want %q", got, wantWhere)
	}
	wantArgs := []interface{}{"%Tolkien%", "%ring%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildListQueryEscapesLikeMetacharacters(t *testing.T) {
	spec := query.Spec{
		Filters: []query.Filter{{Field: "title", Value: "100%_done"}},
	}
	_, args := BuildListQuery(spec)

	want := `%100\%\_done%`
	if args[0] != want {
		t.Errorf("arg = %q, want %q", args[0], want)
	}
}

func TestBuildListQueryYearFilterCastsToText(t *testing.T) {
	spec := query.Spec{
		Filters: []query.Filter{{Field: "year", Value: "196"}},
	}
	sql, _ := BuildListQuery(spec)

	wantWhere := " WHERE CAST(year AS TEXT) ILIKE $1"
	if !strings.Contains(sql, wantWhere) {
		t.Errorf("sql = %q, want it to contain %q", sql, wantWhere)
	}
}

// Rows with no year sort after every dated row regardless of direction.
// That is the documented null-ordering behavior for sort=-year and sort=year.
func TestBuildListQuerySortNullsLast(t *testing.T) {
	tests := []struct {
		name string
		sort query.Sort
		want string
	}{
		{"descending", query.Sort{Field: "year", Descending: true}, " ORDER BY year DESC NULLS LAST, id ASC"},
		{"ascending", query.Sort{Field: "year"}, " ORDER BY year ASC NULLS LAST, id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := BuildListQuery(query.Spec{Sort: &tt.sort})
			if !strings.Contains(sql, tt.want) {
				t.Errorf("sql = %q, want it to contain %q", sql, tt.want)
			}
		})
	}
}

func TestBuildListQueryProjection(t *testing.T) {
	spec := query.Spec{Fields: []string{"id", "title", "author"}}
	sql, _ := BuildListQuery(spec)

	wantPrefix := "SELECT id, title, author FROM books"
	if sql[:len(wantPrefix)] != wantPrefix {
		t.Errorf("sql = %q, want prefix %q", sql, wantPrefix)
	}
}

func TestProjectedColumns(t *testing.T) {
	if got := ProjectedColumns(nil); !reflect.DeepEqual(got, bookColumns) {
		t.Errorf("nil projection should select all columns, got %v", got)
	}
	fields := []string{"id", "year"}
	if got := ProjectedColumns(fields); !reflect.DeepEqual(got, fields) {
		t.Errorf("projection = %v, want %v", got, fields)
	}
}

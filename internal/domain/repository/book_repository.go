package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"elibrary/internal/app/query"
	"elibrary/internal/common"
	"elibrary/internal/domain/model"
	"elibrary/internal/platform/database"
)

type BookRepository interface {
	List(ctx context.Context, spec query.Spec) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id string) error
}

// bookColumns is the full-document column order; projections select a
// subset of these.
var bookColumns = []string{
	"id", "title", "author", "description", "year", "genre", "language",
	"slug", "owner_id", "created_at", "updated_at",
}

type pgBookRepository struct {
	pg *database.Postgres
}

func NewPgBookRepository(pg *database.Postgres) BookRepository {
	return &pgBookRepository{pg: pg}
}

// ProjectedColumns resolves a projection spec to the column list actually
// selected. An empty projection means the full document.
func ProjectedColumns(fields []string) []string {
	if len(fields) == 0 {
		return bookColumns
	}
	return fields
}

// BuildListQuery renders the filter/sort/projection spec into SQL. Filters
// become ANDed ILIKE substring matches with LIKE metacharacters escaped;
// absent sort falls back to insertion order; rows with no year sort last in
// either direction.
func BuildListQuery(spec query.Spec) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(ProjectedColumns(spec.Fields), ", "))
	b.WriteString(" FROM books")

	var args []interface{}
	argID := 1
	var conditions []string
	for _, f := range spec.Filters {
		col := f.Field
		if col == "year" {
			col = "CAST(year AS TEXT)"
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", col, argID))
		args = append(args, "%"+query.EscapeLike(f.Value)+"%")
		argID++
	}
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	if spec.Sort != nil {
		direction := "ASC"
		if spec.Sort.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s NULLS LAST, id ASC", spec.Sort.Field, direction)
	} else {
		b.WriteString(" ORDER BY created_at ASC, id ASC")
	}

	return b.String(), args
}

// scanTargets maps the selected columns onto fields of b, in column order.
func scanTargets(b *model.Book, columns []string) []interface{} {
	targets := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		switch col {
		case "id":
			targets = append(targets, &b.ID)
		case "title":
			targets = append(targets, &b.Title)
		case "author":
			targets = append(targets, &b.Author)
		case "description":
			targets = append(targets, &b.Description)
		case "year":
			targets = append(targets, &b.Year)
		case "genre":
			targets = append(targets, &b.Genre)
		case "language":
			targets = append(targets, &b.Language)
		case "slug":
			targets = append(targets, &b.Slug)
		case "owner_id":
			targets = append(targets, &b.OwnerID)
		case "created_at":
			targets = append(targets, &b.CreatedAt)
		case "updated_at":
			targets = append(targets, &b.UpdatedAt)
		}
	}
	return targets
}

func (r *pgBookRepository) List(ctx context.Context, spec query.Spec) ([]model.Book, error) {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return nil, err
	}

	queryStr, args := BuildListQuery(spec)
	rows, err := db.QueryContext(ctx, queryStr, args...)
	if err != nil {
		return nil, fmt.Errorf("pgBookRepository.List query: %w", err)
	}
	defer rows.Close()

	columns := ProjectedColumns(spec.Fields)
	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(scanTargets(&b, columns)...); err != nil {
			return nil, fmt.Errorf("pgBookRepository.List scan: %w", err)
		}
		books = append(books, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBookRepository.List rows.Err: %w", err)
	}
	return books, nil
}

func (r *pgBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return nil, err
	}

	queryStr := `SELECT id, title, author, description, year, genre, language, slug, owner_id, created_at, updated_at
	             FROM books WHERE id = $1`
	book := &model.Book{}
	err = db.QueryRowContext(ctx, queryStr, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Description, &book.Year, &book.Genre,
		&book.Language, &book.Slug, &book.OwnerID, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBookRepository.FindByID: %w", err)
	}
	return book, nil
}

func (r *pgBookRepository) Create(ctx context.Context, book *model.Book) error {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return err
	}

	queryStr := `INSERT INTO books (id, title, author, description, year, genre, language, slug, owner_id)
	             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	             RETURNING created_at, updated_at`
	err = db.QueryRowContext(ctx, queryStr,
		book.ID, book.Title, book.Author, book.Description, book.Year, book.Genre,
		book.Language, book.Slug, book.OwnerID,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Create: %w", err)
	}
	return nil
}

// Update is a full replace of the mutable fields; creation metadata and
// ownership are never touched.
func (r *pgBookRepository) Update(ctx context.Context, book *model.Book) error {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return err
	}

	queryStr := `UPDATE books SET
	               title = $1, author = $2, description = $3, year = $4, genre = $5,
	               language = $6, slug = $7, updated_at = CURRENT_TIMESTAMP
	             WHERE id = $8`
	result, err := db.ExecContext(ctx, queryStr,
		book.Title, book.Author, book.Description, book.Year, book.Genre,
		book.Language, book.Slug, book.ID,
	)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgBookRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBookRepository) Delete(ctx context.Context, id string) error {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgBookRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgBookRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"elibrary/internal/common"
	"elibrary/internal/domain/model"
	"elibrary/internal/platform/database"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type pgUserRepository struct {
	pg *database.Postgres
}

func NewPgUserRepository(pg *database.Postgres) UserRepository {
	return &pgUserRepository{pg: pg}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, email, hashed_password, role)
	          VALUES ($1, $2, $3, $4)`
	_, err = db.ExecContext(ctx, query, user.ID, user.Email, user.HashedPassword, user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, hashed_password, role, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err = db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	db, err := r.pg.Handle(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, hashed_password, role, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err = db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

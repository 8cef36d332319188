package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookrealm-backend/internal/domains/category/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (title, icon, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		category.Title, category.Icon, category.Priority,
		category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateCategory
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, title, icon, priority, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Title, &category.Icon,
		&category.Priority, &category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *postgresRepository) GetByTitle(ctx context.Context, title string) (*model.Category, error) {
	query := `
		SELECT id, title, icon, priority, created_at, updated_at
		FROM categories
		WHERE title = $1
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, query, title).Scan(
		&category.ID, &category.Title, &category.Icon,
		&category.Priority, &category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by title: %w", err)
	}
	return &category, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, title, icon, priority, created_at, updated_at
		FROM categories
		ORDER BY priority DESC, title ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories query failed: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return categories, nil
}

func (r *postgresRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET title = $1, icon = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query,
		category.Title, category.Icon, category.UpdatedAt, category.ID,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateCategory
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category; books referencing it fall back to NULL
// via the FK's ON DELETE SET NULL.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) IncreasePriority(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE categories SET priority = priority + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increase category priority: %w", err)
	}
	return nil
}

func (r *postgresRepository) DecreasePriority(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE categories SET priority = GREATEST(priority - 1, 0) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to decrease category priority: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	categorymodel "bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/interest/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateBatch(ctx context.Context, userID int64, categoryIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin interests tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO interested_categories (user_id, category_id, created_at)
			VALUES ($1, $2, NOW())
		`, userID, categoryID)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %d", model.ErrAlreadyInterested, categoryID)
		}
		if err != nil {
			return fmt.Errorf("failed to insert interest: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit interests tx: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, categoryID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM interested_categories WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete interest: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrInterestNotFound
	}
	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID int64) ([]categorymodel.Category, error) {
	query := `
		SELECT c.id, c.title, c.icon, c.priority, c.created_at, c.updated_at
		FROM interested_categories ic
		JOIN categories c ON c.id = ic.category_id
		WHERE ic.user_id = $1
		ORDER BY c.priority DESC, c.title ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list interests query failed: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[categorymodel.Category])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return categories, nil
}

func (r *postgresRepository) CategoryIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category_id FROM interested_categories WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("interest ids query failed: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return ids, nil
}

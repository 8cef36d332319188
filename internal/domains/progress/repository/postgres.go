package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookrealm-backend/internal/domains/progress/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, progress *model.Progress) error {
	query := `
		INSERT INTO chapter_progresses (user_id, book_id, chapter_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		progress.UserID, progress.BookID, progress.ChapterID,
		progress.Position, progress.CreatedAt, progress.UpdatedAt,
	).Scan(&progress.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateProgress
	}
	if err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, progress *model.Progress) error {
	query := `
		UPDATE chapter_progresses
		SET chapter_id = $1, position = $2, updated_at = $3
		WHERE user_id = $4 AND book_id = $5
	`

	result, err := r.pool.Exec(ctx, query,
		progress.ChapterID, progress.Position, progress.UpdatedAt,
		progress.UserID, progress.BookID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProgressNotFound
	}
	return nil
}

func (r *postgresRepository) GetByUserAndBook(ctx context.Context, userID, bookID int64) (*model.Progress, error) {
	query := `
		SELECT id, user_id, book_id, chapter_id, position, created_at, updated_at
		FROM chapter_progresses
		WHERE user_id = $1 AND book_id = $2
	`

	var progress model.Progress
	err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&progress.ID, &progress.UserID, &progress.BookID, &progress.ChapterID,
		&progress.Position, &progress.CreatedAt, &progress.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

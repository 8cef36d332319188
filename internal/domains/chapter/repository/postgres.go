package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookrealm-backend/internal/domains/chapter/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	query := `
		INSERT INTO chapters (book_id, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		chapter.BookID, chapter.Title, chapter.Content, chapter.Status,
		chapter.CreatedAt, chapter.UpdatedAt,
	).Scan(&chapter.ID)
	if err != nil {
		return fmt.Errorf("failed to insert chapter: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Chapter, error) {
	query := `
		SELECT id, book_id, title, content, status, created_at, updated_at
		FROM chapters
		WHERE id = $1
	`

	var chapter model.Chapter
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Content,
		&chapter.Status, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

func (r *postgresRepository) GetOwned(ctx context.Context, ownerID, chapterID int64) (*model.Chapter, error) {
	query := `
		SELECT ch.id, ch.book_id, ch.title, ch.content, ch.status, ch.created_at, ch.updated_at
		FROM chapters ch
		JOIN books b ON b.id = ch.book_id
		WHERE ch.id = $1 AND b.user_id = $2 AND b.deleted_at IS NULL
	`

	var chapter model.Chapter
	err := r.pool.QueryRow(ctx, query, chapterID, ownerID).Scan(
		&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Content,
		&chapter.Status, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owned chapter: %w", err)
	}
	return &chapter, nil
}

func (r *postgresRepository) ListByBook(ctx context.Context, bookID int64, publishedOnly bool) ([]model.Chapter, error) {
	query := `
		SELECT id, book_id, title, content, status, created_at, updated_at
		FROM chapters
		WHERE book_id = $1
	`
	if publishedOnly {
		query += ` AND status = 'published'`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters query failed: %w", err)
	}

	chapters, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Chapter])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return chapters, nil
}

func (r *postgresRepository) CountPublishedForBook(ctx context.Context, bookID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chapters WHERE book_id = $1 AND status = 'published'`,
		bookID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count published chapters: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, chapter *model.Chapter) error {
	query := `
		UPDATE chapters
		SET title = $1, content = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(ctx, query,
		chapter.Title, chapter.Content, chapter.Status, chapter.UpdatedAt, chapter.ID)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrChapterNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrChapterNotFound
	}
	return nil
}

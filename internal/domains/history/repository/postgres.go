package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/history/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Upsert(ctx context.Context, userID, bookID int64, at time.Time) error {
	query := `
		INSERT INTO histories (user_id, book_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, userID, bookID, at); err != nil {
		return fmt.Errorf("failed to upsert history: %w", err)
	}
	return nil
}

func (r *postgresRepository) PruneOldest(ctx context.Context, userID int64, cap int) error {
	query := `
		DELETE FROM histories
		WHERE user_id = $1 AND book_id NOT IN (
			SELECT book_id FROM histories
			WHERE user_id = $1
			ORDER BY updated_at DESC
			LIMIT $2
		)
	`

	if _, err := r.pool.Exec(ctx, query, userID, cap); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, bookID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM histories WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrHistoryNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByBook(ctx context.Context, bookID int64) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM histories WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to purge history for book: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListBooksByUser(ctx context.Context, userID int64) ([]bookmodel.Book, error) {
	query := `
		SELECT
			b.id, b.title, b.slug, b.description, b.keywords, b.cover_url,
			b.status, b.favorite_count, b.user_id, b.category_id,
			b.deleted_at, b.purge_at, b.expiry_days, b.created_at, b.updated_at,
			u.name, c.title
		FROM histories h
		JOIN books b ON b.id = h.book_id
		JOIN users u ON u.id = b.user_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE h.user_id = $1 AND b.deleted_at IS NULL
		ORDER BY h.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list history query failed: %w", err)
	}
	defer rows.Close()

	var books []bookmodel.Book
	for rows.Next() {
		var book bookmodel.Book
		err := rows.Scan(
			&book.ID, &book.Title, &book.Slug, &book.Description,
			pq.Array(&book.Keywords), &book.CoverURL,
			&book.Status, &book.FavoriteCount, &book.UserID, &book.CategoryID,
			&book.DeletedAt, &book.PurgeAt, &book.ExpiryDays,
			&book.CreatedAt, &book.UpdatedAt,
			&book.AuthorName, &book.CategoryTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history book rows: %w", err)
	}
	return books, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/favorite/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, book_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, favorite.UserID, favorite.BookID, favorite.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrAlreadyFavorited
	}
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, bookID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrFavoriteNotFound
	}
	return nil
}

func (r *postgresRepository) IsFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) FavoritedSet(ctx context.Context, userID int64, bookIDs []int64) (map[int64]bool, error) {
	query := `SELECT book_id FROM favorites WHERE user_id = $1 AND book_id = ANY($2)`

	rows, err := r.pool.Query(ctx, query, userID, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("favorited set query failed: %w", err)
	}
	defer rows.Close()

	favorited := make(map[int64]bool, len(bookIDs))
	for rows.Next() {
		var bookID int64
		if err := rows.Scan(&bookID); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorited[bookID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}
	return favorited, nil
}

func (r *postgresRepository) ListBooksByUser(ctx context.Context, userID int64, page bookmodel.Page) ([]bookmodel.Book, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = $1 AND b.deleted_at IS NULL
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites query failed: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	query := `
		SELECT
			b.id, b.title, b.slug, b.description, b.keywords, b.cover_url,
			b.status, b.favorite_count, b.user_id, b.category_id,
			b.deleted_at, b.purge_at, b.expiry_days, b.created_at, b.updated_at,
			u.name, c.title
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		JOIN users u ON u.id = b.user_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE f.user_id = $1 AND b.deleted_at IS NULL
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites query failed: %w", err)
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
			return nil, 0, fmt.Errorf("scan favorite book row: %w", err)
		}
		book.IsFavorite = true
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorite book rows: %w", err)
	}
	return books, total, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookrealm-backend/internal/domains/book/model"
)

// bookColumns is the shared projection: every book read joins the
// author name and category title so list items render without extra
// round trips.
const bookColumns = `
	b.id, b.title, b.slug, b.description, b.keywords, b.cover_url,
	b.status, b.favorite_count, b.user_id, b.category_id,
	b.deleted_at, b.purge_at, b.expiry_days, b.created_at, b.updated_at,
	u.name, c.title
`

const bookFrom = `
	FROM books b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN categories c ON c.id = b.category_id
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var book model.Book
	err := row.Scan(
		&book.ID, &book.Title, &book.Slug, &book.Description,
		pq.Array(&book.Keywords), &book.CoverURL,
		&book.Status, &book.FavoriteCount, &book.UserID, &book.CategoryID,
		&book.DeletedAt, &book.PurgeAt, &book.ExpiryDays,
		&book.CreatedAt, &book.UpdatedAt,
		&book.AuthorName, &book.CategoryTitle,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			title, slug, description, keywords, cover_url, status,
			favorite_count, user_id, category_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		book.Title, book.Slug, book.Description, pq.Array(book.Keywords),
		book.CoverURL, book.Status, book.FavoriteCount,
		book.UserID, book.CategoryID, book.CreatedAt, book.UpdatedAt,
	).Scan(&book.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `WHERE b.id = $1 AND b.deleted_at IS NULL`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `WHERE b.slug = $1 AND b.deleted_at IS NULL`

	book, err := scanBook(r.pool.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by slug: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) GetOwned(ctx context.Context, ownerID int64, slug string) (*model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `WHERE b.slug = $1 AND b.user_id = $2 AND b.deleted_at IS NULL`

	book, err := scanBook(r.pool.QueryRow(ctx, query, slug, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owned book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) SlugInUse(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM books
			WHERE slug = $1 AND deleted_at IS NULL AND id <> $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, slug = $2, description = $3, keywords = $4,
		    cover_url = $5, status = $6, category_id = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		book.Title, book.Slug, book.Description, pq.Array(book.Keywords),
		book.CoverURL, book.Status, book.CategoryID, book.UpdatedAt, book.ID,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id int64, status string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE books SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set book status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) MarkDeleted(ctx context.Context, id int64, deletedAt, purgeAt time.Time, expiryDays int) error {
	query := `
		UPDATE books
		SET deleted_at = $1, purge_at = $2, expiry_days = $3,
		    status = $4, updated_at = $1
		WHERE id = $5 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query,
		deletedAt, purgeAt, expiryDays, model.StatusDraft, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id int64) error {
	query := `
		UPDATE books
		SET deleted_at = NULL, purge_at = NULL, expiry_days = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) GetTrashed(ctx context.Context, ownerID int64, slug string) (*model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `WHERE b.slug = $1 AND b.user_id = $2 AND b.deleted_at IS NOT NULL`

	book, err := scanBook(r.pool.QueryRow(ctx, query, slug, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trashed book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) ListTrashed(ctx context.Context, ownerID int64) ([]model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `
		WHERE b.user_id = $1 AND b.deleted_at IS NOT NULL
		ORDER BY b.deleted_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list trashed books query failed: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) ListDeleted(ctx context.Context) ([]model.Book, error) {
	query := `SELECT` + bookColumns + bookFrom + `
		WHERE b.deleted_at IS NOT NULL
		ORDER BY b.purge_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deleted books query failed: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) UpdateExpiryDays(ctx context.Context, id int64, days int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE books SET expiry_days = $1 WHERE id = $2 AND deleted_at IS NOT NULL`,
		days, id)
	if err != nil {
		return fmt.Errorf("failed to update expiry days: %w", err)
	}
	return nil
}

// HardDelete removes the row; chapters, favorites and history rows go
// with it through ON DELETE CASCADE.
func (r *postgresRepository) HardDelete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to hard delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementFavoriteCount(ctx context.Context, bookID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE books SET favorite_count = favorite_count + 1 WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to increment favorite count: %w", err)
	}
	return nil
}

func (r *postgresRepository) DecrementFavoriteCount(ctx context.Context, bookID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE books SET favorite_count = GREATEST(favorite_count - 1, 0) WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to decrement favorite count: %w", err)
	}
	return nil
}

// orderClause maps the sort parameter to SQL. Unknown values never
// reach here; the DTO validator rejects them.
func orderClause(sort string) string {
	switch sort {
	case model.SortTitleAsc:
		return "ORDER BY b.title ASC"
	case model.SortTitleDesc:
		return "ORDER BY b.title DESC"
	case model.SortNewest:
		return "ORDER BY b.created_at DESC"
	case model.SortOldest:
		return "ORDER BY b.created_at ASC"
	default:
		return "ORDER BY b.id ASC"
	}
}

func (r *postgresRepository) Search(ctx context.Context, tier SearchTier, filter model.ListFilter, page model.Page) ([]model.Book, int, error) {
	conditions := []string{"b.deleted_at IS NULL", "b.status = 'published'"}
	args := []any{}

	if filter.Search != "" && tier != TierNone {
		args = append(args, filter.Search)
		n := len(args)
		switch tier {
		case TierTitle:
			conditions = append(conditions,
				fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", n))
		case TierKeywords:
			conditions = append(conditions,
				fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(b.keywords) kw WHERE kw ILIKE '%%' || $%d || '%%')", n))
		case TierDescription:
			conditions = append(conditions,
				fmt.Sprintf("b.description ILIKE '%%' || $%d || '%%'", n))
		}
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("b.category_id = $%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("b.user_id = $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")
	return r.pagedList(ctx, where, orderClause(filter.Sort), args, page)
}

func (r *postgresRepository) ListByCategoryIDs(ctx context.Context, categoryIDs []int64, page model.Page) ([]model.Book, int, error) {
	where := `WHERE b.deleted_at IS NULL AND b.status = 'published' AND b.category_id = ANY($1)`
	return r.pagedList(ctx, where, "ORDER BY b.created_at DESC", []any{categoryIDs}, page)
}

func (r *postgresRepository) ListPopular(ctx context.Context, page model.Page) ([]model.Book, int, error) {
	where := `WHERE b.deleted_at IS NULL AND b.status = 'published'`
	return r.pagedList(ctx, where, "ORDER BY b.favorite_count DESC, b.created_at DESC", nil, page)
}

// ListRelated matches on shared category or keyword overlap. The anchor
// itself can match; the service strips it from the result.
func (r *postgresRepository) ListRelated(ctx context.Context, anchor *model.Book, page model.Page) ([]model.Book, int, error) {
	conditions := []string{"b.deleted_at IS NULL", "b.status = 'published'"}
	args := []any{}

	related := []string{}
	if anchor.CategoryID != nil {
		args = append(args, *anchor.CategoryID)
		related = append(related, fmt.Sprintf("b.category_id = $%d", len(args)))
	}
	if len(anchor.Keywords) > 0 {
		args = append(args, pq.Array(anchor.Keywords))
		related = append(related, fmt.Sprintf("b.keywords && $%d", len(args)))
	}
	if len(related) == 0 {
		// Nothing to relate on: the anchor has no category and no
		// keywords, so there are no related books.
		return nil, 0, nil
	}
	conditions = append(conditions, "("+strings.Join(related, " OR ")+")")

	where := "WHERE " + strings.Join(conditions, " AND ")
	return r.pagedList(ctx, where, "ORDER BY b.favorite_count DESC, b.created_at DESC", args, page)
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID int64, includeDeleted bool, page model.Page) ([]model.Book, int, error) {
	conditions := []string{"b.user_id = $1"}
	if !includeDeleted {
		conditions = append(conditions, "b.deleted_at IS NULL")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")
	return r.pagedList(ctx, where, "ORDER BY b.updated_at DESC", []any{ownerID}, page)
}

// pagedList runs the count query and the page query with a shared WHERE
// clause and argument list.
func (r *postgresRepository) pagedList(ctx context.Context, where, order string, args []any, page model.Page) ([]model.Book, int, error) {
	var total int
	countQuery := `SELECT COUNT(*)` + bookFrom + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books query failed: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	pageArgs := append(args, page.Size, page.Offset())
	query := fmt.Sprintf(`SELECT %s %s %s %s LIMIT $%d OFFSET $%d`,
		bookColumns, bookFrom, where, order, len(pageArgs)-1, len(pageArgs))

	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books query failed: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
)

var _ portcontent.Repository = (*Repository)(nil)

const columns = `id, user_id, project_id, content_type, content, metadata, created_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save inserts one record. Saved content is append-only; there is no update path.
func (r *Repository) Save(ctx context.Context, c domaincontent.SavedContent) (domaincontent.SavedContent, error) {
	meta := c.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO saved_contents (`+columns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+columns,
		c.ID, c.UserID, c.ProjectID, string(c.ContentType), c.Content, meta, c.CreatedAt,
	)

	out, err := scanContent(row)
	if err != nil {
		return domaincontent.SavedContent{}, fmt.Errorf("inserting saved content: %w", err)
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, userID, id uuid.UUID) (domaincontent.SavedContent, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM saved_contents WHERE id = $1 AND user_id = $2`, id, userID)

	out, err := scanContent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domaincontent.SavedContent{}, portcontent.ErrNotFound
		}
		return domaincontent.SavedContent{}, fmt.Errorf("querying saved content: %w", err)
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context, filters domaincontent.ListFilters) ([]domaincontent.SavedContent, error) {
	query := `SELECT ` + columns + ` FROM saved_contents WHERE user_id = $1`
	args := []any{filters.UserID}
	argIdx := 2

	if filters.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argIdx)
		args = append(args, *filters.ProjectID)
		argIdx++
	}
	if filters.ContentType != nil {
		query += fmt.Sprintf(" AND content_type = $%d", argIdx)
		args = append(args, string(*filters.ContentType))
		argIdx++
	}

	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing saved contents: %w", err)
	}
	defer rows.Close()

	out := []domaincontent.SavedContent{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning saved content row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved content rows: %w", err)
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_contents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting saved content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return portcontent.ErrNotFound
	}
	return nil
}

func scanContent(row pgx.Row) (domaincontent.SavedContent, error) {
	var c domaincontent.SavedContent
	var contentType string
	err := row.Scan(&c.ID, &c.UserID, &c.ProjectID, &contentType, &c.Content, &c.Metadata, &c.CreatedAt)
	c.ContentType = domaincontent.Type(contentType)
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	return c, err
}

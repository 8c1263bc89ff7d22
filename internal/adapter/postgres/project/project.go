package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
	portproject "github.com/alanyang/listingcraft/internal/port/project"
)

var _ portproject.Repository = (*Repository)(nil)

const columns = `id, user_id, name, address, property_type, bedrooms, bathrooms,
	square_feet, price, description, created_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p domainproject.Project) (domainproject.Project, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO projects (`+columns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+columns,
		p.ID, p.UserID, p.Name, p.Address, p.PropertyType, p.Bedrooms, p.Bathrooms,
		p.SquareFeet, p.Price, p.Description, p.CreatedAt,
	)

	out, err := scanProject(row)
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domainproject.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM projects WHERE id = $1`, id)

	out, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainproject.Project{}, portproject.ErrNotFound
		}
		return domainproject.Project{}, fmt.Errorf("get project: %w", err)
	}
	return out, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domainproject.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM projects WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []domainproject.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return portproject.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (domainproject.Project, error) {
	var p domainproject.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Address, &p.PropertyType, &p.Bedrooms, &p.Bathrooms,
		&p.SquareFeet, &p.Price, &p.Description, &p.CreatedAt,
	)
	return p, err
}

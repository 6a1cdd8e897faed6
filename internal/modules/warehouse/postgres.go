package warehouse

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL warehouse repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateWarehouse(ctx context.Context, w *Warehouse) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO warehouses (id, name, location) VALUES ($1, $2, $3)`,
		w.ID, w.Name, w.Location)
	return err
}

func (r *postgresRepository) GetWarehouseByID(ctx context.Context, id uuid.UUID) (*Warehouse, error) {
	w := &Warehouse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM warehouses WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *postgresRepository) ListWarehouses(ctx context.Context) ([]*Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM warehouses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*Warehouse
	for rows.Next() {
		w := &Warehouse{}
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *postgresRepository) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	return err
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const itemColumns = `id, warehouse_id, user_id, name, description, quantity, min_stock_level, unit_price, category, image, created_at, updated_at, deleted_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*Item, error) {
	i := &Item{}
	err := row.Scan(
		&i.ID, &i.WarehouseID, &i.UserID, &i.Name, &i.Description,
		&i.Quantity, &i.MinStockLevel, &i.UnitPrice, &i.Category,
		&i.Image, &i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *postgresRepository) List(ctx context.Context, f Filters, p PageRequest) (*Page, error) {
	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	n := 0

	if f.Category != "" {
		n++
		where = append(where, fmt.Sprintf("category = $%d", n))
		args = append(args, f.Category)
	}
	if f.WarehouseID != nil {
		n++
		where = append(where, fmt.Sprintf("warehouse_id = $%d", n))
		args = append(args, *f.WarehouseID)
	}
	if f.BelowMinStock {
		where = append(where, "quantity <= min_stock_level")
	}
	if f.Search != "" {
		n++
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+f.Search+"%")
	}

	clause := "WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inventory_items "+clause, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, itemColumns, clause, n+1, n+2)
	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Page{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage}, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM inventory_items WHERE id = $1 AND deleted_at IS NULL`, itemColumns)
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepository) Create(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items
			(id, warehouse_id, user_id, name, description, quantity, min_stock_level, unit_price, category, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.WarehouseID, item.UserID, item.Name, item.Description,
		item.Quantity, item.MinStockLevel, item.UnitPrice, item.Category, item.Image)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// isUniqueViolation reports whether err is Postgres error 23505
// (unique_violation).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Update locks the row for the duration of the transaction so the returned
// old/new pair always describes a transition that happened in isolation.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Item, *Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	lockQuery := fmt.Sprintf(
		`SELECT %s FROM inventory_items WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, itemColumns)
	old, err := scanItem(tx.QueryRowContext(ctx, lockQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 0
	assign := func(col string, val interface{}) {
		n++
		set = append(set, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
	}
	if fields.Name != nil {
		assign("name", *fields.Name)
	}
	if fields.Description != nil {
		assign("description", *fields.Description)
	}
	if fields.Quantity != nil {
		assign("quantity", *fields.Quantity)
	}
	if fields.MinStockLevel != nil {
		assign("min_stock_level", *fields.MinStockLevel)
	}
	if fields.UnitPrice != nil {
		assign("unit_price", *fields.UnitPrice)
	}
	if fields.Category != nil {
		assign("category", *fields.Category)
	}
	if fields.Image != nil {
		assign("image", *fields.Image)
	}

	query := fmt.Sprintf(`
		UPDATE inventory_items SET %s WHERE id = $%d
		RETURNING %s`, strings.Join(set, ", "), n+1, itemColumns)
	args = append(args, id)

	updated, err := scanItem(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return old, updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockQuery := fmt.Sprintf(
		`SELECT %s FROM inventory_items WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, itemColumns)
	old, err := scanItem(tx.QueryRowContext(ctx, lockQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory_items SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return old, nil
}

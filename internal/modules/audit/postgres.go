package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL audit log repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Record(ctx context.Context, e Entry) (*Log, error) {
	if !e.Kind.Valid() {
		return nil, fmt.Errorf("invalid audit kind: %s", e.Kind)
	}
	log := &Log{
		ID:          uuid.New(),
		UserName:    e.UserName,
		Kind:        e.Kind,
		Description: e.Description,
		WarehouseID: e.WarehouseID,
		UserID:      e.UserID,
		ItemID:      e.ItemID,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, user_name, type, description, warehouse_id, user_id, inventory_item_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.UserName, log.Kind, log.Description,
		log.WarehouseID, log.UserID, log.ItemID, log.CreatedAt)
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (r *postgresRepository) List(ctx context.Context, f Filters, p PageRequest) (*Page, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	n := 0

	if f.Kind != "" {
		n++
		where += fmt.Sprintf(" AND type = $%d", n)
		args = append(args, f.Kind)
	}
	if f.WarehouseID != nil {
		n++
		where += fmt.Sprintf(" AND warehouse_id = $%d", n)
		args = append(args, *f.WarehouseID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audit_logs "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, user_name, type, description, warehouse_id, user_id, inventory_item_id, created_at
		FROM audit_logs %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*Log
	for rows.Next() {
		l := &Log{}
		if err := rows.Scan(
			&l.ID, &l.UserName, &l.Kind, &l.Description,
			&l.WarehouseID, &l.UserID, &l.ItemID, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Page{Logs: logs, Total: total, Page: p.Page, PerPage: p.PerPage}, nil
}

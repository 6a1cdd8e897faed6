package audit

import (
	"context"

	"github.com/google/uuid"
)

// Entry carries everything needed to record one audit event.
type Entry struct {
	UserName    string
	Kind        Kind
	Description string
	WarehouseID uuid.UUID
	UserID      uuid.UUID
	ItemID      *uuid.UUID
}

// Filters narrows an audit log listing. Zero values are ignored. The caller
// is responsible for forcing WarehouseID for non-admin actors; the trail
// trusts its filter input.
type Filters struct {
	Kind        Kind
	WarehouseID *uuid.UUID
}

// PageRequest selects a page of results.
type PageRequest struct {
	Page    int
	PerPage int
}

// Page is one page of audit log entries, newest first.
type Page struct {
	Logs    []*Log `json:"data"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// Recorder is the append-only write side of the audit trail. There is no
// update or delete.
type Recorder interface {
	Record(ctx context.Context, e Entry) (*Log, error)
}

// Repository defines audit trail storage.
type Repository interface {
	Recorder
	List(ctx context.Context, f Filters, p PageRequest) (*Page, error)
}

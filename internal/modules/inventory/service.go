package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
	"github.com/kmwenda/stocktrack-backend/internal/modules/audit"
	"github.com/kmwenda/stocktrack-backend/internal/modules/notify"
	"github.com/kmwenda/stocktrack-backend/internal/modules/warehouse"
)

// Service coordinates every inventory mutation: policy check, validation,
// store mutation, audit record, notification fan-out, in that order. Policy
// and validation failures abort before any write; audit and notification
// failures after a committed mutation are logged but never roll it back.
type Service interface {
	ListItems(ctx context.Context, actor access.Actor, f Filters, p PageRequest) (*Page, error)
	GetItem(ctx context.Context, actor access.Actor, id string) (*Item, error)
	CreateItem(ctx context.Context, actor access.Actor, req CreateItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, actor access.Actor, id string, req UpdateItemRequest) error
	DeleteItem(ctx context.Context, actor access.Actor, id string) error
}

// Notifier is the fan-out side of the pipeline.
type Notifier interface {
	Fanout(ctx context.Context, msg notify.Message) error
}

// CreateItemRequest holds data for creating an item. All fields are
// required except image.
type CreateItemRequest struct {
	WarehouseID   string  `json:"warehouse_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	UnitPrice     float64 `json:"unit_price"`
	Category      string  `json:"category"`
	Image         string  `json:"image,omitempty"`
}

// UpdateItemRequest holds a partial update; only supplied fields are
// validated and applied.
type UpdateItemRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	MinStockLevel *int     `json:"min_stock_level,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Image         *string  `json:"image,omitempty"`
}

type service struct {
	repo       Repository
	warehouses warehouse.Repository
	auditor    audit.Recorder
	notifier   Notifier
	logger     *zap.Logger
}

// NewService creates the inventory service.
func NewService(repo Repository, warehouses warehouse.Repository, auditor audit.Recorder, notifier Notifier, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		warehouses: warehouses,
		auditor:    auditor,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *service) ListItems(ctx context.Context, actor access.Actor, f Filters, p PageRequest) (*Page, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 15
	}
	// Non-admins only ever see their own warehouse, whatever filter they
	// sent. One without a warehouse sees nothing.
	scope, ok := access.ScopedWarehouse(actor)
	if !ok {
		return &Page{Items: []*Item{}, Page: p.Page, PerPage: p.PerPage}, nil
	}
	if scope != nil {
		f.WarehouseID = scope
	}
	return s.repo.List(ctx, f, p)
}

func (s *service) GetItem(ctx context.Context, actor access.Actor, id string) (*Item, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewWarehouse(actor, item.WarehouseID) {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *service) CreateItem(ctx context.Context, actor access.Actor, req CreateItemRequest) (*Item, error) {
	if !access.CanManageInventory(actor) {
		return nil, ErrForbidden
	}

	fields := map[string]string{}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		fields["warehouse_id"] = "must be a valid warehouse id"
	} else {
		exists, err := s.warehouses.Exists(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		if !exists {
			fields["warehouse_id"] = "warehouse does not exist"
		}
	}
	if req.Name == "" {
		fields["name"] = "is required"
	} else if len(req.Name) > 255 {
		fields["name"] = "must be at most 255 characters"
	}
	if req.Description == "" {
		fields["description"] = "is required"
	}
	if req.Quantity < 0 {
		fields["quantity"] = "must not be negative"
	}
	if req.MinStockLevel < 0 {
		fields["min_stock_level"] = "must not be negative"
	}
	if req.UnitPrice < 0 {
		fields["unit_price"] = "must not be negative"
	}
	if !Category(req.Category).Valid() {
		fields["category"] = "must be one of electronics, furniture, clothing, other"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	item := &Item{
		ID:            uuid.New(),
		WarehouseID:   warehouseID,
		UserID:        actor.ID,
		Name:          req.Name,
		Description:   req.Description,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		UnitPrice:     req.UnitPrice,
		Category:      Category(req.Category),
	}
	if req.Image != "" {
		item.Image = &req.Image
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.Entry{
		UserName:    actor.Name,
		Kind:        audit.KindItemCreated,
		Description: fmt.Sprintf("Created inventory item: %s", item.Name),
		WarehouseID: item.WarehouseID,
		UserID:      actor.ID,
		ItemID:      &item.ID,
	})
	s.fanout(ctx, item, notify.KindItemCreated,
		fmt.Sprintf("New inventory item '%s' has been created", item.Name))

	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, actor access.Actor, id string, req UpdateItemRequest) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !access.CanModifyItem(actor, item.UserID) {
		return ErrForbidden
	}

	fields := map[string]string{}
	if req.Name != nil {
		if *req.Name == "" {
			fields["name"] = "must not be empty"
		} else if len(*req.Name) > 255 {
			fields["name"] = "must be at most 255 characters"
		}
	}
	if req.Description != nil && *req.Description == "" {
		fields["description"] = "must not be empty"
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		fields["quantity"] = "must not be negative"
	}
	if req.MinStockLevel != nil && *req.MinStockLevel < 0 {
		fields["min_stock_level"] = "must not be negative"
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		fields["unit_price"] = "must not be negative"
	}
	var category *Category
	if req.Category != nil {
		c := Category(*req.Category)
		if !c.Valid() {
			fields["category"] = "must be one of electronics, furniture, clothing, other"
		}
		category = &c
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	old, updated, err := s.repo.Update(ctx, itemID, UpdateFields{
		Name:          req.Name,
		Description:   req.Description,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		UnitPrice:     req.UnitPrice,
		Category:      category,
		Image:         req.Image,
	})
	if err != nil {
		return err
	}

	stockAdjusted := req.Quantity != nil && *req.Quantity != old.Quantity

	if stockAdjusted {
		s.recordAudit(ctx, audit.Entry{
			UserName: actor.Name,
			Kind:     audit.KindStockAdjusted,
			Description: fmt.Sprintf("Stock adjusted for %s from %d to %d",
				updated.Name, old.Quantity, updated.Quantity),
			WarehouseID: updated.WarehouseID,
			UserID:      actor.ID,
			ItemID:      &updated.ID,
		})
		s.fanout(ctx, updated, notify.KindStockAdjusted,
			fmt.Sprintf("Stock for '%s' has been adjusted from %d to %d",
				updated.Name, old.Quantity, updated.Quantity))

		// The low-stock alert only ever rides on a quantity change.
		if updated.IsLowStock() {
			s.fanout(ctx, updated, notify.KindLowStock,
				fmt.Sprintf("Low stock alert: '%s' is below minimum stock level (%d/%d)",
					updated.Name, updated.Quantity, updated.MinStockLevel))
		}
	} else {
		s.recordAudit(ctx, audit.Entry{
			UserName:    actor.Name,
			Kind:        audit.KindItemUpdated,
			Description: fmt.Sprintf("Updated inventory item: %s", updated.Name),
			WarehouseID: updated.WarehouseID,
			UserID:      actor.ID,
			ItemID:      &updated.ID,
		})
		s.fanout(ctx, updated, notify.KindItemUpdated,
			fmt.Sprintf("Inventory item '%s' has been updated", updated.Name))
	}

	return nil
}

func (s *service) DeleteItem(ctx context.Context, actor access.Actor, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}
	if !access.CanDeleteInventory(actor) {
		return ErrForbidden
	}

	old, err := s.repo.SoftDelete(ctx, itemID)
	if err != nil {
		return err
	}

	// Deletion is audited but not fanned out to users.
	s.recordAudit(ctx, audit.Entry{
		UserName:    actor.Name,
		Kind:        audit.KindItemDeleted,
		Description: fmt.Sprintf("Deleted inventory item: %s", old.Name),
		WarehouseID: old.WarehouseID,
		UserID:      actor.ID,
		ItemID:      &old.ID,
	})
	return nil
}

// recordAudit appends an audit entry for an already-committed mutation. The
// mutation is the source of truth; a failure here is surfaced in the
// operational log, not to the caller.
func (s *service) recordAudit(ctx context.Context, e audit.Entry) {
	if _, err := s.auditor.Record(ctx, e); err != nil {
		s.logger.Error("audit record failed",
			zap.String("type", string(e.Kind)),
			zap.String("warehouse_id", e.WarehouseID.String()),
			zap.Error(err))
	}
}

func (s *service) fanout(ctx context.Context, item *Item, kind, text string) {
	err := s.notifier.Fanout(ctx, notify.Message{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Kind:          kind,
		Text:          text,
		WarehouseID:   item.WarehouseID,
		Quantity:      item.Quantity,
		MinStockLevel: item.MinStockLevel,
	})
	if err != nil {
		s.logger.Error("notification fanout failed",
			zap.String("type", kind),
			zap.String("item_id", item.ID.String()),
			zap.Error(err))
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items using GORM. The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID                   uuid.UUID         `gorm:"primaryKey;type:uuid;column:id"`
	CustomerID           uuid.UUID         `gorm:"type:uuid;column:customer_id;not null;index"`
	CustomerNameSnapshot string            `gorm:"column:customer_name_snapshot;type:varchar(200)"`
	CreatedAt            time.Time         `gorm:"column:created_at;not null;index"`
	Items                []orderItemRecord `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          uuid.UUID       `gorm:"primaryKey;type:uuid;column:id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;column:order_id;not null;index"`
	Position    int             `gorm:"column:position;not null"`
	ProductName string          `gorm:"column:product_name;type:varchar(200);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

// List returns orders oldest first with their items.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("created_at, id").
		Find(&records).Error
	if err != nil {
		return nil, storageError(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
		for i := range record.Items {
			record.Items[i].OrderID = record.ID
		}
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		return insertItems(tx, record.Items)
	})
	if err != nil {
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

// Update rewrites the order row and replaces every item in one transaction.
func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderRecord{}).
			Where("id = ?", record.ID).
			Updates(map[string]any{
				"customer_id":            record.CustomerID,
				"customer_name_snapshot": record.CustomerNameSnapshot,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		if err := tx.Where("order_id = ?", record.ID).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		return insertItems(tx, record.Items)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ports.ErrNotFound):
		return err
	default:
		return storageError(err)
	}
}

// Delete removes the order and its items. A missing order is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&orderRecord{}, "id = ?", id).Error
	})
	if err != nil {
		return storageError(err)
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func insertItems(tx *gorm.DB, items []orderItemRecord) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(o *domain.Order) orderRecord {
	items := o.Items()
	rec := orderRecord{
		ID:                   o.ID(),
		CustomerID:           o.CustomerID(),
		CustomerNameSnapshot: o.CustomerNameSnapshot(),
		CreatedAt:            o.CreatedAt().UTC(),
		Items:                make([]orderItemRecord, 0, len(items)),
	}
	for i, item := range items {
		id := item.ID()
		if id == uuid.Nil {
			id = uuid.New()
		}
		rec.Items = append(rec.Items, orderItemRecord{
			ID:          id,
			OrderID:     o.ID(),
			Position:    i,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.RestoreItem(item.ID, item.OrderID, item.ProductName, item.Quantity, item.UnitPrice))
	}
	return domain.RestoreOrder(r.ID, r.CustomerID, r.CustomerNameSnapshot, r.CreatedAt.UTC(), items)
}

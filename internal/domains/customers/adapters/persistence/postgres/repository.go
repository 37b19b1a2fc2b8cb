package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers using GORM. The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Name      string    `gorm:"column:name;type:varchar(200);not null;index"`
	Email     string    `gorm:"column:email;type:varchar(200)"`
	Phone     string    `gorm:"column:phone;type:varchar(50)"`
	Address   string    `gorm:"column:address;type:varchar(300)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

func (customerRecord) TableName() string { return "customers" }

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

// List returns customers oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, storageError(err)
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := toRecord(customer)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

// Update overwrites the mutable columns. created_at is never rewritten.
func (r *Repository) Update(ctx context.Context, customer *domain.Customer) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if customer == nil {
		return errors.New("customer is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&customerRecord{}).
		Where("id = ?", customer.ID()).
		Updates(map[string]any{
			"name":    customer.Name(),
			"email":   customer.Email(),
			"phone":   customer.Phone(),
			"address": customer.Address(),
		})
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes the row if present; a missing row is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&customerRecord{}, "id = ?", id).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("customer repository not configured")
	}
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(c *domain.Customer) customerRecord {
	return customerRecord{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Address:   c.Address(),
		CreatedAt: c.CreatedAt().UTC(),
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return domain.RestoreCustomer(r.ID, r.Name, r.Email, r.Phone, r.Address, r.CreatedAt.UTC())
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists user accounts using GORM. The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Email        string    `gorm:"column:email;type:varchar(200);uniqueIndex;not null"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(200)"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Roles        []string  `gorm:"column:roles;type:text;serializer:json"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Save upserts by id. A different account holding the same email yields ErrEmailTaken.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner userRecord
		err := tx.Select("id").First(&owner, "email = ?", record.Email).Error
		switch {
		case err == nil && owner.ID != record.ID:
			return ports.ErrEmailTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "password_hash", "roles", "updated_at"}),
		}).Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, ports.ErrEmailTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, storageError(err)
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("created_at, email").Find(&records).Error; err != nil {
		return nil, storageError(err)
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("user repository not configured")
	}
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(u *domain.User) userRecord {
	roles := u.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return userRecord{
		ID:           u.ID(),
		Email:        strings.ToLower(u.Email()),
		DisplayName:  u.DisplayName(),
		PasswordHash: u.PasswordHash(),
		Roles:        names,
		CreatedAt:    u.CreatedAt().UTC(),
	}
}

func (r userRecord) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(r.Roles))
	for _, name := range r.Roles {
		roles = append(roles, domain.Role(name))
	}
	return domain.RestoreUser(r.ID, r.Email, r.DisplayName, r.PasswordHash, roles, r.CreatedAt.UTC())
}

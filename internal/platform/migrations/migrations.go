package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
	)
}

// Customer schema mirrors the customers persistence adapter.
type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Name      string    `gorm:"column:name;type:varchar(200);not null;index"`
	Email     string    `gorm:"column:email;type:varchar(200)"`
	Phone     string    `gorm:"column:phone;type:varchar(50)"`
	Address   string    `gorm:"column:address;type:varchar(300)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

func (customerRecord) TableName() string { return "customers" }

// Order schema mirrors the orders persistence adapter. Orders reference customers by id only;
// the customer aggregate is checked at the application layer, not with a foreign key.
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

// User schema mirrors the identity persistence adapter.
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

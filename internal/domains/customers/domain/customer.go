package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 200
	MaxEmailLength   = 200
	MaxPhoneLength   = 50
	MaxAddressLength = 300
)

var (
	ErrMissingID        = errors.New("customer id is required")
	ErrEmptyName        = errors.New("customer name is required")
	ErrNameTooLong      = errors.New("customer name is too long")
	ErrInvalidEmail     = errors.New("customer email is not valid")
	ErrContactTooLong   = errors.New("customer contact field is too long")
	ErrMissingCreatedAt = errors.New("customer creation time is required")
)

// Customer is the master-data aggregate for the people and companies that place orders.
// Fields are only reachable through the mutators below so every observable state is valid.
type Customer struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	address   string
	createdAt time.Time
}

// NewCustomer assigns a fresh identity and creation time, then applies the name and contact rules.
func NewCustomer(name, email, phone, address string) (*Customer, error) {
	c := &Customer{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.UpdateContactInfo(email, phone, address); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCustomer rebuilds a customer from persisted state. Callers must Validate before writing it back.
func RestoreCustomer(id uuid.UUID, name, email, phone, address string, createdAt time.Time) *Customer {
	return &Customer{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
	}
}

func (c *Customer) ID() uuid.UUID        { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) Address() string      { return c.address }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

// Rename trims and stores the name. The previous name is kept on failure.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := checkName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

// UpdateContactInfo replaces email, phone and address. Empty values clear the field;
// a non-empty email must look like an address. Nothing changes when a rule fails.
func (c *Customer) UpdateContactInfo(email, phone, address string) error {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if err := checkEmail(email); err != nil {
		return err
	}
	if utf8.RuneCountInString(phone) > MaxPhoneLength || utf8.RuneCountInString(address) > MaxAddressLength {
		return ErrContactTooLong
	}
	c.email = email
	c.phone = phone
	c.address = address
	return nil
}

// Validate re-checks every invariant; it runs before each create or update reaches storage.
func (c *Customer) Validate() error {
	if c.id == uuid.Nil {
		return ErrMissingID
	}
	if err := checkName(strings.TrimSpace(c.name)); err != nil {
		return err
	}
	if err := checkEmail(strings.TrimSpace(c.email)); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.phone) > MaxPhoneLength || utf8.RuneCountInString(c.address) > MaxAddressLength {
		return ErrContactTooLong
	}
	if c.createdAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}

func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func checkEmail(email string) error {
	if email == "" {
		return nil
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return ErrContactTooLong
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return ErrInvalidEmail
	}
	return nil
}

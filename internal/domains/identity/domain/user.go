package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength    = 6
	MaxEmailLength       = 200
	MaxDisplayNameLength = 200
)

var (
	ErrMissingID       = errors.New("user id is required")
	ErrInvalidEmail    = errors.New("user email is not valid")
	ErrNameTooLong     = errors.New("user display name is too long")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrMissingPassword = errors.New("user password hash is required")
	ErrUnknownRole     = errors.New("unknown role")
)

// PasswordCost is the bcrypt work factor used for new hashes.
var PasswordCost = bcrypt.DefaultCost

// Role grants access to a group of operations.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleUser}
}

// ParseRole matches a role name case-insensitively.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	for _, r := range Roles() {
		if strings.EqualFold(string(r), name) {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// User is an account that can sign in to the API.
type User struct {
	id           uuid.UUID
	email        string
	displayName  string
	passwordHash string
	roles        []Role
	createdAt    time.Time
}

// NewUser hashes the password and returns an account holding the User role.
func NewUser(email, displayName, password string) (*User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email
	}
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, ErrNameTooLong
	}
	u := &User{
		id:          uuid.New(),
		email:       email,
		displayName: displayName,
		roles:       []Role{RoleUser},
		createdAt:   time.Now().UTC(),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(id uuid.UUID, email, displayName, passwordHash string, roles []Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		roles:        slices.Clone(roles),
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) Roles() []Role        { return slices.Clone(u.roles) }

func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.roles, role)
}

// GrantRole adds a role; granting a held role is a no-op.
func (u *User) GrantRole(role Role) error {
	if !slices.Contains(Roles(), role) {
		return ErrUnknownRole
	}
	if !u.HasRole(role) {
		u.roles = append(u.roles, role)
	}
	return nil
}

// SetPassword replaces the stored hash.
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.passwordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *User) Validate() error {
	if u.id == uuid.Nil {
		return ErrMissingID
	}
	if _, err := NormalizeEmail(u.email); err != nil {
		return err
	}
	if utf8.RuneCountInString(u.displayName) > MaxDisplayNameLength {
		return ErrNameTooLong
	}
	if u.passwordHash == "" {
		return ErrMissingPassword
	}
	for _, r := range u.roles {
		if !slices.Contains(Roles(), r) {
			return ErrUnknownRole
		}
	}
	return nil
}

// NormalizeEmail trims and lower-cases a login email, rejecting malformed ones.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || utf8.RuneCountInString(email) > MaxEmailLength {
		return "", ErrInvalidEmail
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

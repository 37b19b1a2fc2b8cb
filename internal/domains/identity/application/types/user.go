package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
)

// RegisterInput is the write model for new accounts.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// UserView never exposes the password hash.
type UserView struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Roles       []string
	CreatedAt   time.Time
}

// Session is returned by a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      UserView
}

func NewUserView(u *domain.User) UserView {
	roles := u.Roles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return UserView{
		ID:          u.ID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Roles:       names,
		CreatedAt:   u.CreatedAt(),
	}
}

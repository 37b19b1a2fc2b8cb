package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
	"github.com/HenrryVelezC/minierp/internal/platform/auth"
)

// Service exposes identity use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account holding the User role.
func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.UserView, error) {
	user, err := domain.NewUser(input.Email, input.DisplayName, input.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, user)
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*types.Session, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	view := types.NewUserView(user)
	token, err := s.tokens.Issue(auth.Principal{
		UserID: view.ID,
		Email:  view.Email,
		Name:   view.DisplayName,
		Roles:  view.Roles,
	})
	if err != nil {
		return nil, err
	}
	return &types.Session{Token: token.Value, ExpiresAt: token.ExpiresAt, User: view}, nil
}

// Me returns the profile of the signed-in user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*types.UserView, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := types.NewUserView(user)
	return &view, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]types.UserView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]types.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, types.NewUserView(u))
	}
	return views, nil
}

// AssignRole grants a role by name. Granting a held role succeeds without change.
func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, role string) (*types.UserView, error) {
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.GrantRole(parsed); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, user)
}

// EnsureSeed creates the default administrator unless the email is already registered.
// It reports whether an account was created.
func (s *Service) EnsureSeed(ctx context.Context, email, password string) (bool, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return false, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, normalized); err == nil {
		return false, nil
	} else if !errors.Is(err, ports.ErrNotFound) {
		return false, err
	}
	admin, err := domain.NewUser(normalized, "Administrator", password)
	if err != nil {
		return false, mapError(err)
	}
	if err := admin.GrantRole(domain.RoleAdmin); err != nil {
		return false, mapError(err)
	}
	if _, err := s.save(ctx, admin); err != nil {
		if errors.Is(err, ports.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) save(ctx context.Context, user *domain.User) (*types.UserView, error) {
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	view := types.NewUserView(saved)
	return &view, nil
}

var _ ports.Service = (*Service)(nil)

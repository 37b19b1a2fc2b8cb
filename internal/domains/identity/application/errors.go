package application

import (
	"errors"
	"fmt"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
)

var (
	// ErrInvalidInput signals the request violated an account rule.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrInvalidCredentials is returned for any failed login, without saying which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingID) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrMissingPassword) ||
		errors.Is(err, domain.ErrUnknownRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

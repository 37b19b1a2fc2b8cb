package ports

import "github.com/HenrryVelezC/minierp/internal/platform/auth"

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(p auth.Principal) (auth.Token, error)
}

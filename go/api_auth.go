package minierpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/application/types"
	identityports "github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
	"github.com/HenrryVelezC/minierp/internal/platform/auth"
	apierrors "github.com/HenrryVelezC/minierp/internal/shared/errors"
)

// AuthAPI serves login, the current profile and account registration.
type AuthAPI struct {
	service identityports.Service
}

// NewAuthAPI wires dependencies.
func NewAuthAPI(service identityports.Service) AuthAPI {
	return AuthAPI{service: service}
}

func fromUserView(v types.UserView) UserProfile {
	roles := v.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserProfile{
		Id:          v.ID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		Roles:       roles,
		CreatedAt:   v.CreatedAt,
	}
}

// Post /api/auth/login
// Exchange credentials for an access token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      fromUserView(session.User),
	})
}

// Get /api/auth/me
// Profile of the signed-in user
func (api *AuthAPI) Me(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
		return
	}
	view, err := api.service.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		if isNotFound(err) {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("account no longer exists"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUserView(*view))
}

// Post /api/auth/register
// Create an account with the User role
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.Register(c.Request.Context(), types.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromUserView(*view))
}

package minierpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityports "github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
)

// AdminAPI serves account administration.
type AdminAPI struct {
	service identityports.Service
}

// NewAdminAPI wires dependencies.
func NewAdminAPI(service identityports.Service) AdminAPI {
	return AdminAPI{service: service}
}

// Get /api/admin/users
// List accounts
func (api *AdminAPI) ListUsers(c *gin.Context) {
	views, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]UserProfile, 0, len(views))
	for _, v := range views {
		result = append(result, fromUserView(v))
	}
	c.JSON(http.StatusOK, result)
}

// Post /api/admin/assign-role
// Grant a role to an account
func (api *AdminAPI) AssignRole(c *gin.Context) {
	var payload AssignRoleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.AssignRole(c.Request.Context(), payload.UserId, payload.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUserView(*view))
}

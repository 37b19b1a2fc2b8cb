package minierpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
	apierrors "github.com/HenrryVelezC/minierp/internal/shared/errors"
)

// CustomerAPI serves the customer master data.
type CustomerAPI struct {
	service customerports.Service
}

// NewCustomerAPI wires dependencies.
func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Get /api/customers
// List customers
func (api *CustomerAPI) ListCustomers(c *gin.Context) {
	views, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromCustomerViews(views))
}

// Get /api/customers/:id
// Find customer by id
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if view == nil {
		respondProblem(c, apierrors.NewNotFoundProblem("customer", id))
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromCustomerView(view))
}

// Post /api/customers
// Create customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload customerhttpmapper.MutationCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.Create(c.Request.Context(), customerhttpmapper.ToCustomerInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/customers/"+view.ID.String())
	c.JSON(http.StatusCreated, customerhttpmapper.FromCustomerView(view))
}

// Put /api/customers/:id
// Update customer
func (api *CustomerAPI) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload customerhttpmapper.MutationCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	found, err := api.service.Update(c.Request.Context(), id, customerhttpmapper.ToCustomerInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		respondProblem(c, apierrors.NewNotFoundProblem("customer", id))
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /api/customers/:id
// Delete customer
func (api *CustomerAPI) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := api.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		respondProblem(c, apierrors.NewNotFoundProblem("customer", id))
		return
	}
	c.Status(http.StatusNoContent)
}

package minierpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
	apierrors "github.com/HenrryVelezC/minierp/internal/shared/errors"
)

// OrderAPI serves orders and their lines.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI wires dependencies.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /api/orders
// List orders with their items
func (api *OrderAPI) ListOrders(c *gin.Context) {
	views, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderViews(views))
}

// Get /api/orders/:id
// Find order by id
func (api *OrderAPI) GetOrder(c *gin.Context) {
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
		respondProblem(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderView(view))
}

// Post /api/orders
// Place an order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.MutationOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.Create(c.Request.Context(), orderhttpmapper.ToOrderInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/orders/"+view.ID.String())
	c.JSON(http.StatusCreated, orderhttpmapper.FromOrderView(view))
}

// Put /api/orders/:id
// Replace the customer and items of an order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.MutationOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	found, err := api.service.Update(c.Request.Context(), id, orderhttpmapper.ToOrderInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		respondProblem(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /api/orders/:id
// Delete order. Deleting an unknown order still answers 204.
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

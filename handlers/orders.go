package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createOrder(c *gin.Context) {
	var input models.NewCustomOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	order, err := h.orders.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order.Response())
}

func (h *Handlers) listOrders(c *gin.Context) {
	var status *models.CustomOrderStatus
	if raw := c.Query("status"); raw != "" {
		if !models.ValidCustomOrderStatus(raw) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		s := models.CustomOrderStatus(raw)
		status = &s
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), status)
	if err != nil {
		h.abortWithError(c, "listOrders", err)
		return
	}
	responses := make([]models.CustomOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, orders[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) getOrder(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "getOrder", err)
		return
	}
	c.JSON(http.StatusOK, order.Response())
}

func (h *Handlers) updateOrderStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.CustomOrderStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, models.CustomOrderStatus(input.Status))
	if err != nil {
		h.abortWithError(c, "updateOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, order.Response())
}

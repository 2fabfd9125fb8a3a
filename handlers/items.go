package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createItem(c *gin.Context) {
	var input models.NewItem
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	item, err := h.stock.CreateItem(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createItem", err)
		return
	}
	c.JSON(http.StatusCreated, item.Response())
}

func (h *Handlers) listItems(c *gin.Context) {
	items, err := h.stock.ListItems(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "listItems", err)
		return
	}
	responses := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) getItem(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	item, err := h.stock.GetItem(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "getItem", err)
		return
	}
	c.JSON(http.StatusOK, item.Response())
}

func (h *Handlers) updateItem(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateItem
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	item, err := h.stock.UpdateItem(c.Request.Context(), id, &input)
	if err != nil {
		h.abortWithError(c, "updateItem", err)
		return
	}
	c.JSON(http.StatusOK, item.Response())
}

func (h *Handlers) adjustItemQuantity(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewInventoryAdjustment
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	item, err := h.stock.AdjustQuantity(c.Request.Context(), id, input.Delta, input.Reason)
	if err != nil {
		h.abortWithError(c, "adjustItemQuantity", err)
		return
	}
	c.JSON(http.StatusOK, item.Response())
}

func (h *Handlers) listItemAdjustments(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	adjustments, err := h.stock.ListAdjustments(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "listItemAdjustments", err)
		return
	}
	responses := make([]models.InventoryAdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		responses = append(responses, adjustments[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

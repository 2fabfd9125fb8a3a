package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createSale(c *gin.Context) {
	var input models.NewSale
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	sale, err := h.sales.RecordSale(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createSale", err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handlers) listSales(c *gin.Context) {
	sessionId, ok := queryIntPtr(c, "sessionId")
	if !ok {
		return
	}
	itemId, ok := queryIntPtr(c, "itemId")
	if !ok {
		return
	}
	sales, err := h.sales.ListSales(c.Request.Context(), sessionId, itemId)
	if err != nil {
		h.abortWithError(c, "listSales", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handlers) getSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	sale, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "getSale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

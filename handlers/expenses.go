package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createExpense(c *gin.Context) {
	var input models.NewExpense
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	expense, err := h.expenses.CreateExpense(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createExpense", err)
		return
	}
	c.JSON(http.StatusCreated, expense.Response())
}

func (h *Handlers) listExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListExpenses(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "listExpenses", err)
		return
	}
	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, expenses[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) deleteExpense(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := h.expenses.DeleteExpense(c.Request.Context(), id); err != nil {
		h.abortWithError(c, "deleteExpense", err)
		return
	}
	c.Status(http.StatusNoContent)
}

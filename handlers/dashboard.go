package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) getDashboard(c *gin.Context) {
	snapshot, err := h.dashboard.Snapshot(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "getDashboard", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

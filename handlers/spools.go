package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createSpool(c *gin.Context) {
	var input models.NewFilamentSpool
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	spool, err := h.filament.CreateSpool(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createSpool", err)
		return
	}
	resp, err := h.filament.SpoolResponse(c.Request.Context(), spool)
	if err != nil {
		h.abortWithError(c, "createSpool", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handlers) listSpools(c *gin.Context) {
	spools, err := h.filament.ListSpools(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "listSpools", err)
		return
	}
	responses := make([]models.FilamentSpoolResponse, 0, len(spools))
	for i := range spools {
		resp, err := h.filament.SpoolResponse(c.Request.Context(), &spools[i])
		if err != nil {
			h.abortWithError(c, "listSpools", err)
			return
		}
		responses = append(responses, *resp)
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) getSpool(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	spool, err := h.filament.GetSpool(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "getSpool", err)
		return
	}
	resp, err := h.filament.SpoolResponse(c.Request.Context(), spool)
	if err != nil {
		h.abortWithError(c, "getSpool", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) updateSpool(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateFilamentSpool
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	spool, err := h.filament.UpdateSpool(c.Request.Context(), id, &input)
	if err != nil {
		h.abortWithError(c, "updateSpool", err)
		return
	}
	resp, err := h.filament.SpoolResponse(c.Request.Context(), spool)
	if err != nil {
		h.abortWithError(c, "updateSpool", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) logSpoolUsage(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewFilamentUsage
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	usage, spool, err := h.filament.LogUsage(c.Request.Context(), id, &input)
	if err != nil {
		h.abortWithError(c, "logSpoolUsage", err)
		return
	}
	spoolResp, err := h.filament.SpoolResponse(c.Request.Context(), spool)
	if err != nil {
		h.abortWithError(c, "logSpoolUsage", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"usage": usage.Response(),
		"spool": spoolResp,
	})
}

func (h *Handlers) listSpoolUsage(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	logs, err := h.filament.ListUsage(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "listSpoolUsage", err)
		return
	}
	responses := make([]models.FilamentUsageResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

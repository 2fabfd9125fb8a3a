package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createPrintJob(c *gin.Context) {
	var input models.NewPrintJob
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	job, err := h.printJobs.CreateJob(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createPrintJob", err)
		return
	}
	c.JSON(http.StatusCreated, job.Response())
}

func (h *Handlers) listPrintJobs(c *gin.Context) {
	var status *models.PrintJobStatus
	if raw := c.Query("status"); raw != "" {
		if !models.ValidPrintJobStatus(raw) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		s := models.PrintJobStatus(raw)
		status = &s
	}
	jobs, err := h.printJobs.ListJobs(c.Request.Context(), status)
	if err != nil {
		h.abortWithError(c, "listPrintJobs", err)
		return
	}
	responses := make([]models.PrintJobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, jobs[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) updatePrintJobStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.PrintJobStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	job, err := h.printJobs.UpdateStatus(c.Request.Context(), id, models.PrintJobStatus(input.Status))
	if err != nil {
		h.abortWithError(c, "updatePrintJobStatus", err)
		return
	}
	c.JSON(http.StatusOK, job.Response())
}

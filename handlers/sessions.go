package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printforge/stall_backend/models"
)

func (h *Handlers) createSession(c *gin.Context) {
	var input models.NewSalesSession
	if err := c.ShouldBindJSON(&input); err != nil {
		h.abortBadRequest(c, err)
		return
	}
	session, err := h.sessions.CreateSession(c.Request.Context(), &input)
	if err != nil {
		h.abortWithError(c, "createSession", err)
		return
	}
	c.JSON(http.StatusCreated, session.Response())
}

func (h *Handlers) listSessions(c *gin.Context) {
	sessions, err := h.sessions.ListSessions(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "listSessions", err)
		return
	}
	responses := make([]models.SalesSessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, sessions[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handlers) getSession(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	session, err := h.sessions.GetSession(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "getSession", err)
		return
	}
	c.JSON(http.StatusOK, session.Response())
}

func (h *Handlers) closeSession(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	session, err := h.sessions.CloseSession(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "closeSession", err)
		return
	}
	c.JSON(http.StatusOK, session.Response())
}

func (h *Handlers) sessionSummary(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	summary, err := h.sessions.Summary(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "sessionSummary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/printforge/stall_backend/config"
	"github.com/printforge/stall_backend/models"
)

// Handlers holds the ledger components, each constructed with the shared
// database handle injected from main.
type Handlers struct {
	logger    *logrus.Logger
	stock     *models.StockLedger
	filament  *models.FilamentLedger
	sessions  *models.SessionStore
	sales     *models.SaleRecorder
	orders    *models.CustomOrderStore
	printJobs *models.PrintQueue
	expenses  *models.ExpenseStore
	dashboard *models.DashboardReader
}

func New(db *gorm.DB, logger *logrus.Logger) *Handlers {
	registerValidations()
	return &Handlers{
		logger:    logger,
		stock:     models.NewStockLedger(db),
		filament:  models.NewFilamentLedger(db),
		sessions:  models.NewSessionStore(db),
		sales:     models.NewSaleRecorder(db),
		orders:    models.NewCustomOrderStore(db),
		printJobs: models.NewPrintQueue(db),
		expenses:  models.NewExpenseStore(db),
		dashboard: models.NewDashboardReader(db),
	}
}

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("customorderstatus", func(fl validator.FieldLevel) bool {
		return models.ValidCustomOrderStatus(fl.Field().String())
	})
	v.RegisterValidation("printjobstatus", func(fl validator.FieldLevel) bool {
		return models.ValidPrintJobStatus(fl.Field().String())
	})
}

func (h *Handlers) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/items", h.createItem)
	api.GET("/items", h.listItems)
	api.GET("/items/:id", h.getItem)
	api.PUT("/items/:id", h.updateItem)
	api.POST("/items/:id/adjustments", h.adjustItemQuantity)
	api.GET("/items/:id/adjustments", h.listItemAdjustments)

	api.POST("/sessions", h.createSession)
	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/:id", h.getSession)
	api.POST("/sessions/:id/close", h.closeSession)
	api.GET("/sessions/:id/summary", h.sessionSummary)
	api.GET("/sessions/:id/summary/export", h.exportSessionSummary)

	api.POST("/sales", h.createSale)
	api.GET("/sales", h.listSales)
	api.GET("/sales/:id", h.getSale)

	api.POST("/spools", h.createSpool)
	api.GET("/spools", h.listSpools)
	api.GET("/spools/:id", h.getSpool)
	api.PUT("/spools/:id", h.updateSpool)
	api.POST("/spools/:id/usage", h.logSpoolUsage)
	api.GET("/spools/:id/usage", h.listSpoolUsage)

	api.POST("/orders", h.createOrder)
	api.GET("/orders", h.listOrders)
	api.GET("/orders/:id", h.getOrder)
	api.PATCH("/orders/:id/status", h.updateOrderStatus)

	api.POST("/print-jobs", h.createPrintJob)
	api.GET("/print-jobs", h.listPrintJobs)
	api.PATCH("/print-jobs/:id/status", h.updatePrintJobStatus)

	api.POST("/expenses", h.createExpense)
	api.GET("/expenses", h.listExpenses)
	api.DELETE("/expenses/:id", h.deleteExpense)

	api.GET("/dashboard", h.getDashboard)
}

// statusForError maps the core's error taxonomy to HTTP statuses: missing
// records to 404, business-rule violations to 400, everything else to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidTimestamp),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInsufficientFilament),
		errors.Is(err, models.ErrSessionClosed),
		errors.Is(err, models.ErrMissingCashAmount),
		errors.Is(err, models.ErrInsufficientCash):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) abortWithError(c *gin.Context, funcName string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		config.LogError(h.logger, "handlers", funcName, c.FullPath(), nil, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (h *Handlers) abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryIntPtr(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &n, true
}

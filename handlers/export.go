package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/printforge/stall_backend/config"
)

// exportSessionSummary renders a session's roll-up as a spreadsheet for the
// end-of-day paperwork.
func (h *Handlers) exportSessionSummary(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	summary, err := h.sessions.Summary(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "exportSessionSummary", err)
		return
	}
	sales, err := h.sales.ListSales(c.Request.Context(), &id, nil)
	if err != nil {
		h.abortWithError(c, "exportSessionSummary", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"Session", summary.Title},
		{"Status", string(summary.Status)},
		{"Sales", summary.SaleCount},
		{"Units sold", summary.UnitsSold},
		{"Gross revenue", summary.GrossRevenue.InexactFloat64()},
		{"Card revenue", summary.CardRevenue.InexactFloat64()},
		{"Cash revenue", summary.CashRevenue.InexactFloat64()},
		{},
		{"Sold at", "Item", "Qty", "Unit price", "Total", "Payment"},
	}
	for _, s := range sales {
		rows = append(rows, []interface{}{
			s.SoldAt.Format("2006-01-02 15:04"),
			s.ItemName,
			s.Quantity,
			s.UnitPrice.InexactFloat64(),
			s.TotalPrice.InexactFloat64(),
			string(s.PaymentMethod),
		})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			h.abortWithError(c, "exportSessionSummary", err)
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			h.abortWithError(c, "exportSessionSummary", err)
			return
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=session-%d-summary.xlsx", id))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		config.LogError(h.logger, "handlers", "exportSessionSummary", c.FullPath(), nil, err)
	}
}

// seed-dev fills a fresh development database with a small catalog, a spool
// rack, an open session and a couple of expenses.
//
// Usage (from the backend directory):
//
//	DB_PATH=dev.db go run ./cmd/seed-dev
//
// Re-running against an already-seeded database is a no-op.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printforge/stall_backend/config"
	"github.com/printforge/stall_backend/models"
)

func main() {
	ctx := context.Background()

	db, err := config.OpenDatabase()
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer config.CloseDatabase(db)

	if err := models.MigrateTable(db); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}

	var itemCount int64
	if err := db.WithContext(ctx).Model(&models.Item{}).Count(&itemCount).Error; err != nil {
		fmt.Fprintln(os.Stderr, "count items:", err)
		os.Exit(1)
	}
	if itemCount > 0 {
		fmt.Println("database already seeded; nothing to do")
		return
	}

	runId := uuid.NewString()[:8]
	stock := models.NewStockLedger(db)
	filament := models.NewFilamentLedger(db)
	sessions := models.NewSessionStore(db)
	expenses := models.NewExpenseStore(db)

	items := []models.NewItem{
		{Name: "Articulated Dragon", UnitPrice: decimal.NewFromFloat(14.50), Quantity: 10, Tag: "fidget"},
		{Name: "Phone Stand", UnitPrice: decimal.NewFromFloat(8.00), Quantity: 15, Tag: "desk"},
		{Name: "Planter Pot (small)", UnitPrice: decimal.NewFromFloat(6.50), Quantity: 12, Tag: "home"},
		{Name: "Cable Clip 5-pack", UnitPrice: decimal.NewFromFloat(3.00), Quantity: 30, Tag: "desk"},
	}
	for i := range items {
		if _, err := stock.CreateItem(ctx, &items[i]); err != nil {
			fmt.Fprintln(os.Stderr, "seed item:", err)
			os.Exit(1)
		}
	}

	spools := []models.NewFilamentSpool{
		{Material: "PLA", Color: "galaxy black", Brand: "Prusament", WeightGrams: decimal.NewFromInt(1000)},
		{Material: "PLA", Color: "fire engine red", Brand: "eSun", WeightGrams: decimal.NewFromInt(1000)},
		{Material: "PETG", Color: "clear", Brand: "Overture", WeightGrams: decimal.NewFromInt(1000)},
	}
	for i := range spools {
		if _, err := filament.CreateSpool(ctx, &spools[i]); err != nil {
			fmt.Fprintln(os.Stderr, "seed spool:", err)
			os.Exit(1)
		}
	}

	if _, err := sessions.CreateSession(ctx, &models.NewSalesSession{
		Title:    "Dev Market " + runId,
		Location: "Riverside Market",
		Weather:  "sunny",
	}); err != nil {
		fmt.Fprintln(os.Stderr, "seed session:", err)
		os.Exit(1)
	}

	lastWeek := time.Now().UTC().AddDate(0, 0, -7)
	seedExpenses := []models.NewExpense{
		{Description: "Stall fee", Category: "fees", Amount: decimal.NewFromFloat(25.00), ExpenseDate: &lastWeek},
		{Description: "Filament restock", Category: "materials", Amount: decimal.NewFromFloat(43.80)},
	}
	for i := range seedExpenses {
		if _, err := expenses.CreateExpense(ctx, &seedExpenses[i]); err != nil {
			fmt.Fprintln(os.Stderr, "seed expense:", err)
			os.Exit(1)
		}
	}

	fmt.Println("seeded dev database")
}

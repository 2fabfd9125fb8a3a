package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const lowStockThreshold = 3

// DashboardSnapshot is a pure read-side roll-up for the landing screen.
type DashboardSnapshot struct {
	ItemCount              int64                 `json:"itemCount"`
	TotalStockUnits        int64                 `json:"totalStockUnits"`
	LowStockItems          []ItemResponse        `json:"lowStockItems"`
	OpenSession            *SalesSessionResponse `json:"openSession"`
	TodaySaleCount         int64                 `json:"todaySaleCount"`
	TodayRevenue           decimal.Decimal       `json:"todayRevenue"`
	FilamentRemainingGrams decimal.Decimal       `json:"filamentRemainingGrams"`
	MonthExpenses          decimal.Decimal       `json:"monthExpenses"`
}

type DashboardReader struct {
	db *gorm.DB
}

func NewDashboardReader(db *gorm.DB) *DashboardReader {
	return &DashboardReader{db: db}
}

func (d *DashboardReader) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	snapshot := DashboardSnapshot{
		LowStockItems: []ItemResponse{},
	}
	db := d.db.WithContext(ctx)

	type stockRow struct {
		ItemCount  int64 `gorm:"column:item_count"`
		TotalUnits int64 `gorm:"column:total_units"`
	}
	var stock stockRow
	err := db.Model(&Item{}).
		Select("COUNT(*) AS item_count, COALESCE(SUM(quantity), 0) AS total_units").
		Scan(&stock).Error
	if err != nil {
		return nil, err
	}
	snapshot.ItemCount = stock.ItemCount
	snapshot.TotalStockUnits = stock.TotalUnits

	var lowStock []Item
	err = db.Where("quantity < ?", lowStockThreshold).
		Order("quantity ASC, name ASC").
		Find(&lowStock).Error
	if err != nil {
		return nil, err
	}
	for i := range lowStock {
		snapshot.LowStockItems = append(snapshot.LowStockItems, lowStock[i].Response())
	}

	var open SalesSession
	err = db.Where("status = ?", SessionStatusOpen).
		Order("started_at DESC").
		First(&open).Error
	if err == nil {
		resp := open.Response()
		snapshot.OpenSession = &resp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	type salesRow struct {
		SaleCount  int64 `gorm:"column:sale_count"`
		GrossCents int64 `gorm:"column:gross_cents"`
	}
	var today salesRow
	err = db.Model(&Sale{}).
		Select("COUNT(*) AS sale_count, COALESCE(SUM(total_price_cents), 0) AS gross_cents").
		Where("sold_at >= ?", dayStart).
		Scan(&today).Error
	if err != nil {
		return nil, err
	}
	snapshot.TodaySaleCount = today.SaleCount
	snapshot.TodayRevenue = ToDecimal(today.GrossCents)

	var remaining decimal.Decimal
	err = db.Model(&FilamentSpool{}).
		Select("COALESCE(SUM(remaining_grams), 0)").
		Scan(&remaining).Error
	if err != nil {
		return nil, err
	}
	snapshot.FilamentRemainingGrams = remaining

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var expenseCents int64
	err = db.Model(&Expense{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("expense_date >= ?", monthStart).
		Scan(&expenseCents).Error
	if err != nil {
		return nil, err
	}
	snapshot.MonthExpenses = ToDecimal(expenseCents)

	return &snapshot, nil
}

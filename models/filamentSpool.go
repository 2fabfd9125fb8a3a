package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FilamentSpool struct {
	ID             int             `gorm:"primary_key"`
	Material       string          `gorm:"size:100;not null"`
	Color          string          `gorm:"size:100"`
	Brand          string          `gorm:"size:100"`
	Owner          string          `gorm:"size:100"`
	Dryness        string          `gorm:"size:50"`
	WeightGrams    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RemainingGrams decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostCents      *int64          `gorm:"default:null"`
	PurchaseDate   *time.Time      `gorm:"default:null"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

// FilamentUsageLog is the append-only record of grams consumed from a spool.
type FilamentUsageLog struct {
	ID        int             `gorm:"primary_key"`
	SpoolId   int             `gorm:"index;not null"`
	UsedGrams decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason    string          `gorm:"size:255"`
	Reference string          `gorm:"size:255"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

type NewFilamentSpool struct {
	Material       string           `json:"material" binding:"required"`
	Color          string           `json:"color"`
	Brand          string           `json:"brand"`
	Owner          string           `json:"owner"`
	Dryness        string           `json:"dryness"`
	WeightGrams    decimal.Decimal  `json:"weightGrams" binding:"required"`
	RemainingGrams *decimal.Decimal `json:"remainingGrams"`
	Cost           *decimal.Decimal `json:"cost"`
	PurchaseDate   *time.Time       `json:"purchaseDate"`
	Notes          string           `json:"notes"`
}

type UpdateFilamentSpool struct {
	Material       *string          `json:"material"`
	Color          *string          `json:"color"`
	Brand          *string          `json:"brand"`
	Owner          *string          `json:"owner"`
	Dryness        *string          `json:"dryness"`
	WeightGrams    *decimal.Decimal `json:"weightGrams"`
	RemainingGrams *decimal.Decimal `json:"remainingGrams"`
	Cost           *decimal.Decimal `json:"cost"`
	PurchaseDate   *time.Time       `json:"purchaseDate"`
	Notes          *string          `json:"notes"`
}

type NewFilamentUsage struct {
	UsedGrams decimal.Decimal `json:"usedGrams"`
	Reason    string          `json:"reason"`
	Reference string          `json:"reference"`
}

type FilamentSpoolResponse struct {
	ID             int              `json:"id"`
	Material       string           `json:"material"`
	Color          string           `json:"color,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Owner          string           `json:"owner,omitempty"`
	Dryness        string           `json:"dryness,omitempty"`
	WeightGrams    decimal.Decimal  `json:"weightGrams"`
	RemainingGrams decimal.Decimal  `json:"remainingGrams"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	PurchaseDate   *time.Time       `json:"purchaseDate,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	UsageCount     int64            `json:"usageCount"`
	TotalUsedGrams decimal.Decimal  `json:"totalUsedGrams"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type FilamentUsageResponse struct {
	ID        int             `json:"id"`
	SpoolId   int             `json:"spoolId"`
	UsedGrams decimal.Decimal `json:"usedGrams"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (s *FilamentSpool) Response(usageCount int64, totalUsed decimal.Decimal) FilamentSpoolResponse {
	return FilamentSpoolResponse{
		ID:             s.ID,
		Material:       s.Material,
		Color:          s.Color,
		Brand:          s.Brand,
		Owner:          s.Owner,
		Dryness:        s.Dryness,
		WeightGrams:    s.WeightGrams,
		RemainingGrams: s.RemainingGrams,
		Cost:           ToDecimalOpt(s.CostCents),
		PurchaseDate:   s.PurchaseDate,
		Notes:          s.Notes,
		UsageCount:     usageCount,
		TotalUsedGrams: totalUsed,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (u *FilamentUsageLog) Response() FilamentUsageResponse {
	return FilamentUsageResponse{
		ID:        u.ID,
		SpoolId:   u.SpoolId,
		UsedGrams: u.UsedGrams,
		Reason:    u.Reason,
		Reference: u.Reference,
		CreatedAt: u.CreatedAt,
	}
}

// FilamentLedger owns spool records and their remaining-grams counter.
// Debits go through LogUsage only; nothing else writes remaining_grams
// besides the spool attribute endpoints.
type FilamentLedger struct {
	db *gorm.DB
}

func NewFilamentLedger(db *gorm.DB) *FilamentLedger {
	return &FilamentLedger{db: db}
}

func (l *FilamentLedger) CreateSpool(ctx context.Context, input *NewFilamentSpool) (*FilamentSpool, error) {
	remaining := input.WeightGrams
	if input.RemainingGrams != nil {
		remaining = *input.RemainingGrams
	}
	if remaining.IsNegative() {
		return nil, ErrInvalidAmount
	}

	spool := FilamentSpool{
		Material:       input.Material,
		Color:          input.Color,
		Brand:          input.Brand,
		Owner:          input.Owner,
		Dryness:        input.Dryness,
		WeightGrams:    input.WeightGrams,
		RemainingGrams: remaining,
		PurchaseDate:   input.PurchaseDate,
		Notes:          input.Notes,
	}
	if input.Cost != nil {
		cents := ToMinorUnits(*input.Cost)
		spool.CostCents = &cents
	}
	if err := l.db.WithContext(ctx).Create(&spool).Error; err != nil {
		return nil, err
	}
	return &spool, nil
}

func (l *FilamentLedger) GetSpool(ctx context.Context, id int) (*FilamentSpool, error) {
	var spool FilamentSpool
	if err := l.db.WithContext(ctx).First(&spool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spool, nil
}

func (l *FilamentLedger) ListSpools(ctx context.Context) ([]FilamentSpool, error) {
	var spools []FilamentSpool
	if err := l.db.WithContext(ctx).Order("id ASC").Find(&spools).Error; err != nil {
		return nil, err
	}
	return spools, nil
}

// UpdateSpool edits spool attributes. remaining_grams is deliberately NOT
// clamped to weight_grams here; a spool can legitimately weigh in above its
// nominal weight after a re-spool.
func (l *FilamentLedger) UpdateSpool(ctx context.Context, id int, input *UpdateFilamentSpool) (*FilamentSpool, error) {
	spool, err := l.GetSpool(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Material != nil {
		updates["material"] = *input.Material
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Owner != nil {
		updates["owner"] = *input.Owner
	}
	if input.Dryness != nil {
		updates["dryness"] = *input.Dryness
	}
	if input.WeightGrams != nil {
		updates["weight_grams"] = *input.WeightGrams
	}
	if input.RemainingGrams != nil {
		if input.RemainingGrams.IsNegative() {
			return nil, ErrInvalidAmount
		}
		updates["remaining_grams"] = *input.RemainingGrams
	}
	if input.Cost != nil {
		updates["cost_cents"] = ToMinorUnits(*input.Cost)
	}
	if input.PurchaseDate != nil {
		updates["purchase_date"] = *input.PurchaseDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return spool, nil
	}
	if err := l.db.WithContext(ctx).Model(spool).Updates(updates).Error; err != nil {
		return nil, err
	}
	return l.GetSpool(ctx, id)
}

// LogUsage debits a spool and appends the usage row, atomically. A debit
// larger than the remaining grams rejects in full with
// ErrInsufficientFilament; no partial debit ever lands.
func (l *FilamentLedger) LogUsage(ctx context.Context, spoolId int, input *NewFilamentUsage) (*FilamentUsageLog, *FilamentSpool, error) {
	if !input.UsedGrams.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	var spool FilamentSpool
	if err := tx.First(&spool, spoolId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	// Guarded debit: the remaining-grams check and the decrement are one
	// statement, so concurrent debits serialize against each other.
	res := tx.Model(&FilamentSpool{}).
		Where("id = ? AND remaining_grams >= ?", spool.ID, input.UsedGrams).
		Update("remaining_grams", gorm.Expr("remaining_grams - ?", input.UsedGrams))
	if res.Error != nil {
		tx.Rollback()
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, nil, ErrInsufficientFilament
	}

	usage := FilamentUsageLog{
		SpoolId:   spool.ID,
		UsedGrams: input.UsedGrams,
		Reason:    input.Reason,
		Reference: input.Reference,
	}
	if err := tx.Create(&usage).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.First(&spool, spool.ID).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return &usage, &spool, nil
}

func (l *FilamentLedger) ListUsage(ctx context.Context, spoolId int) ([]FilamentUsageLog, error) {
	if _, err := l.GetSpool(ctx, spoolId); err != nil {
		return nil, err
	}
	var logs []FilamentUsageLog
	err := l.db.WithContext(ctx).
		Where("spool_id = ?", spoolId).
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// UsageTotals recomputes a spool's aggregate usage count and total grams
// from its logs.
func (l *FilamentLedger) UsageTotals(ctx context.Context, spoolId int) (int64, decimal.Decimal, error) {
	type totals struct {
		UsageCount int64           `gorm:"column:usage_count"`
		TotalUsed  decimal.Decimal `gorm:"column:total_used"`
	}
	var t totals
	err := l.db.WithContext(ctx).Model(&FilamentUsageLog{}).
		Select("COUNT(*) AS usage_count, COALESCE(SUM(used_grams), 0) AS total_used").
		Where("spool_id = ?", spoolId).
		Scan(&t).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return t.UsageCount, t.TotalUsed, nil
}

// SpoolResponse assembles the boundary shape with recomputed aggregates.
func (l *FilamentLedger) SpoolResponse(ctx context.Context, spool *FilamentSpool) (*FilamentSpoolResponse, error) {
	count, total, err := l.UsageTotals(ctx, spool.ID)
	if err != nil {
		return nil, err
	}
	resp := spool.Response(count, total)
	return &resp, nil
}

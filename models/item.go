package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Item struct {
	ID             int       `gorm:"primary_key"`
	Name           string    `gorm:"size:255;not null"`
	Description    string    `gorm:"type:text"`
	UnitPriceCents int64     `gorm:"not null;default:0"`
	Quantity       int       `gorm:"not null;default:0"`
	ImageURL       string    `gorm:"size:512"`
	DefaultSpoolId *int      `gorm:"index;default:null"`
	Tag            string    `gorm:"size:100"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

type NewItem struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity" binding:"gte=0"`
	ImageURL       string          `json:"imageUrl"`
	DefaultSpoolId *int            `json:"defaultSpoolId"`
	Tag            string          `json:"tag"`
}

type UpdateItem struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	ImageURL       *string          `json:"imageUrl"`
	DefaultSpoolId *int             `json:"defaultSpoolId"`
	Tag            *string          `json:"tag"`
}

// ItemResponse is the boundary shape of an Item: camelCase fields, money as
// a decimal, timestamps as RFC 3339. Quantity changes never go through
// UpdateItem; they go through AdjustQuantity so the audit trail stays whole.
type ItemResponse struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	DefaultSpoolId *int            `json:"defaultSpoolId,omitempty"`
	Tag            string          `json:"tag,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (i *Item) Response() ItemResponse {
	return ItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Description:    i.Description,
		UnitPrice:      ToDecimal(i.UnitPriceCents),
		Quantity:       i.Quantity,
		ImageURL:       i.ImageURL,
		DefaultSpoolId: i.DefaultSpoolId,
		Tag:            i.Tag,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// StockLedger owns item records and their quantity-on-hand. Every quantity
// mutation flows through applyAdjustment so a matching audit row always
// exists and the non-negativity invariant cannot be bypassed.
type StockLedger struct {
	db *gorm.DB
}

func NewStockLedger(db *gorm.DB) *StockLedger {
	return &StockLedger{db: db}
}

func (l *StockLedger) CreateItem(ctx context.Context, input *NewItem) (*Item, error) {
	item := Item{
		Name:           input.Name,
		Description:    input.Description,
		UnitPriceCents: ToMinorUnits(input.UnitPrice),
		Quantity:       input.Quantity,
		ImageURL:       input.ImageURL,
		DefaultSpoolId: input.DefaultSpoolId,
		Tag:            input.Tag,
	}
	if err := l.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (l *StockLedger) GetItem(ctx context.Context, id int) (*Item, error) {
	var item Item
	if err := l.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (l *StockLedger) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := l.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (l *StockLedger) UpdateItem(ctx context.Context, id int, input *UpdateItem) (*Item, error) {
	item, err := l.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.UnitPrice != nil {
		updates["unit_price_cents"] = ToMinorUnits(*input.UnitPrice)
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DefaultSpoolId != nil {
		updates["default_spool_id"] = *input.DefaultSpoolId
	}
	if input.Tag != nil {
		updates["tag"] = *input.Tag
	}
	if len(updates) == 0 {
		return item, nil
	}
	if err := l.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return l.GetItem(ctx, id)
}

// AdjustQuantity applies a manual signed delta to an item's quantity and
// appends the matching audit row, atomically. A delta that would drive the
// quantity negative rejects the whole operation with ErrInsufficientStock.
func (l *StockLedger) AdjustQuantity(ctx context.Context, itemId int, delta int, reason string) (*Item, error) {
	if delta == 0 {
		return nil, ErrInvalidQuantity
	}

	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var item Item
	if err := tx.First(&item, itemId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := applyAdjustment(tx, &item, delta, reason, "", 0); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAdjustments returns an item's append-only audit trail, newest first.
func (l *StockLedger) ListAdjustments(ctx context.Context, itemId int) ([]InventoryAdjustment, error) {
	if _, err := l.GetItem(ctx, itemId); err != nil {
		return nil, err
	}
	var adjustments []InventoryAdjustment
	err := l.db.WithContext(ctx).
		Where("item_id = ?", itemId).
		Order("id DESC").
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

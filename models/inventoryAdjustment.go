package models

import (
	"time"

	"gorm.io/gorm"
)

// AdjustmentReasonSale marks audit rows written by the sale recorder.
const AdjustmentReasonSale = "sale"

// ReferenceTypeSale links a sale-induced audit row back to its sale.
const ReferenceTypeSale = "sales"

// InventoryAdjustment is the append-only ledger proving how an item's
// quantity arrived at its current value. Rows are never updated or deleted.
type InventoryAdjustment struct {
	ID            int       `gorm:"primary_key"`
	ItemId        int       `gorm:"index;not null"`
	Delta         int       `gorm:"not null"`
	Reason        string    `gorm:"size:255"`
	ReferenceType string    `gorm:"size:100;default:null"`
	ReferenceId   int       `gorm:"default:null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

type InventoryAdjustmentResponse struct {
	ID            int       `json:"id"`
	ItemId        int       `json:"itemId"`
	Delta         int       `json:"delta"`
	Reason        string    `json:"reason,omitempty"`
	ReferenceType string    `json:"referenceType,omitempty"`
	ReferenceId   int       `json:"referenceId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *InventoryAdjustment) Response() InventoryAdjustmentResponse {
	return InventoryAdjustmentResponse{
		ID:            a.ID,
		ItemId:        a.ItemId,
		Delta:         a.Delta,
		Reason:        a.Reason,
		ReferenceType: a.ReferenceType,
		ReferenceId:   a.ReferenceId,
		CreatedAt:     a.CreatedAt,
	}
}

type NewInventoryAdjustment struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// applyAdjustment mutates an item's quantity and appends the audit row
// inside the caller's transaction. The guarded UPDATE keeps the quantity
// check and the write in one statement, so two racing debits against the
// last unit cannot both pass the check. Manual adjustments and sale debits
// both come through here; neither can skip the invariant.
func applyAdjustment(tx *gorm.DB, item *Item, delta int, reason string, referenceType string, referenceId int) error {
	res := tx.Model(&Item{}).
		Where("id = ? AND quantity + ? >= 0", item.ID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	adjustment := InventoryAdjustment{
		ItemId:        item.ID,
		Delta:         delta,
		Reason:        reason,
		ReferenceType: referenceType,
		ReferenceId:   referenceId,
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		return err
	}

	// reload so the caller returns the post-debit quantity and updatedAt
	return tx.First(item, item.ID).Error
}

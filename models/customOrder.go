package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomOrderStatus string

const (
	CustomOrderStatusRequested CustomOrderStatus = "requested"
	CustomOrderStatusAccepted  CustomOrderStatus = "accepted"
	CustomOrderStatusPrinting  CustomOrderStatus = "printing"
	CustomOrderStatusReady     CustomOrderStatus = "ready"
	CustomOrderStatusDelivered CustomOrderStatus = "delivered"
	CustomOrderStatusCancelled CustomOrderStatus = "cancelled"
)

func ValidCustomOrderStatus(s string) bool {
	switch CustomOrderStatus(s) {
	case CustomOrderStatusRequested, CustomOrderStatusAccepted, CustomOrderStatusPrinting,
		CustomOrderStatusReady, CustomOrderStatusDelivered, CustomOrderStatusCancelled:
		return true
	}
	return false
}

// CustomOrder is a plain attribute record; it carries no stock semantics.
// Fulfilling one is a normal sale against the linked item.
type CustomOrder struct {
	ID               int               `gorm:"primary_key"`
	CustomerName     string            `gorm:"size:255;not null"`
	Contact          string            `gorm:"size:255"`
	Description      string            `gorm:"type:text;not null"`
	QuotedPriceCents int64             `gorm:"not null;default:0"`
	Status           CustomOrderStatus `gorm:"size:20;not null;default:'requested'"`
	DueDate          *time.Time        `gorm:"default:null"`
	ItemId           *int              `gorm:"index;default:null"`
	Notes            string            `gorm:"type:text"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime"`
}

type NewCustomOrder struct {
	CustomerName string           `json:"customerName" binding:"required"`
	Contact      string           `json:"contact"`
	Description  string           `json:"description" binding:"required"`
	QuotedPrice  *decimal.Decimal `json:"quotedPrice"`
	DueDate      *time.Time       `json:"dueDate"`
	ItemId       *int             `json:"itemId"`
	Notes        string           `json:"notes"`
}

type CustomOrderStatusUpdate struct {
	Status string `json:"status" binding:"required,customorderstatus"`
}

type CustomOrderResponse struct {
	ID           int               `json:"id"`
	CustomerName string            `json:"customerName"`
	Contact      string            `json:"contact,omitempty"`
	Description  string            `json:"description"`
	QuotedPrice  decimal.Decimal   `json:"quotedPrice"`
	Status       CustomOrderStatus `json:"status"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	ItemId       *int              `json:"itemId,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (o *CustomOrder) Response() CustomOrderResponse {
	return CustomOrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Contact:      o.Contact,
		Description:  o.Description,
		QuotedPrice:  ToDecimal(o.QuotedPriceCents),
		Status:       o.Status,
		DueDate:      o.DueDate,
		ItemId:       o.ItemId,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type CustomOrderStore struct {
	db *gorm.DB
}

func NewCustomOrderStore(db *gorm.DB) *CustomOrderStore {
	return &CustomOrderStore{db: db}
}

func (s *CustomOrderStore) CreateOrder(ctx context.Context, input *NewCustomOrder) (*CustomOrder, error) {
	order := CustomOrder{
		CustomerName:     input.CustomerName,
		Contact:          input.Contact,
		Description:      input.Description,
		QuotedPriceCents: ToMinorUnitsOpt(input.QuotedPrice),
		Status:           CustomOrderStatusRequested,
		DueDate:          input.DueDate,
		ItemId:           input.ItemId,
		Notes:            input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *CustomOrderStore) GetOrder(ctx context.Context, id int) (*CustomOrder, error) {
	var order CustomOrder
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *CustomOrderStore) ListOrders(ctx context.Context, status *CustomOrderStatus) ([]CustomOrder, error) {
	q := s.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var orders []CustomOrder
	if err := q.Order("due_date IS NULL, due_date ASC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *CustomOrderStore) UpdateStatus(ctx context.Context, id int, status CustomOrderStatus) (*CustomOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

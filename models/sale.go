package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// normalizePaymentMethod folds any unrecognized or absent value to card.
func normalizePaymentMethod(m string) PaymentMethod {
	if strings.EqualFold(strings.TrimSpace(m), string(PaymentMethodCash)) {
		return PaymentMethodCash
	}
	return PaymentMethodCard
}

// Sale is an immutable transaction record. The unit price is snapshotted at
// sale time, so later catalog edits never rewrite history.
type Sale struct {
	ID                int           `gorm:"primary_key"`
	SessionId         int           `gorm:"index;not null"`
	ItemId            int           `gorm:"index;not null"`
	Quantity          int           `gorm:"not null"`
	UnitPriceCents    int64         `gorm:"not null"`
	TotalPriceCents   int64         `gorm:"not null"`
	PaymentMethod     PaymentMethod `gorm:"size:10;not null;default:'card'"`
	CashReceivedCents *int64        `gorm:"default:null"`
	ChangeGivenCents  *int64        `gorm:"default:null"`
	SoldAt            time.Time     `gorm:"not null;index"`
	Note              string        `gorm:"type:text"`
	CreatedAt         time.Time     `gorm:"autoCreateTime"`
}

type NewSale struct {
	SessionId     int              `json:"sessionId" binding:"required"`
	ItemId        int              `json:"itemId" binding:"required"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	Note          string           `json:"note"`
	PaymentMethod string           `json:"paymentMethod"`
	CashReceived  *decimal.Decimal `json:"cashReceived"`
	SoldAt        string           `json:"soldAt"`
}

// SaleResponse joins the persisted sale with item name and session title
// for display; money fields cross as decimals.
type SaleResponse struct {
	ID            int              `json:"id"`
	SessionId     int              `json:"sessionId"`
	SessionTitle  string           `json:"sessionTitle"`
	ItemId        int              `json:"itemId"`
	ItemName      string           `json:"itemName"`
	Quantity      int              `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unitPrice"`
	TotalPrice    decimal.Decimal  `json:"totalPrice"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	CashReceived  *decimal.Decimal `json:"cashReceived"`
	ChangeGiven   *decimal.Decimal `json:"changeGiven"`
	SoldAt        time.Time        `json:"soldAt"`
	Note          string           `json:"note,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func (s *Sale) Response(itemName string, sessionTitle string) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		SessionId:     s.SessionId,
		SessionTitle:  sessionTitle,
		ItemId:        s.ItemId,
		ItemName:      itemName,
		Quantity:      s.Quantity,
		UnitPrice:     ToDecimal(s.UnitPriceCents),
		TotalPrice:    ToDecimal(s.TotalPriceCents),
		PaymentMethod: s.PaymentMethod,
		CashReceived:  ToDecimalOpt(s.CashReceivedCents),
		ChangeGiven:   ToDecimalOpt(s.ChangeGivenCents),
		SoldAt:        s.SoldAt,
		Note:          s.Note,
		CreatedAt:     s.CreatedAt,
	}
}

// SaleRecorder is the orchestrating write: it validates the request against
// session state and item stock, computes totals, and commits {sale row,
// stock debit, audit row} in one transaction.
type SaleRecorder struct {
	db *gorm.DB
}

func NewSaleRecorder(db *gorm.DB) *SaleRecorder {
	return &SaleRecorder{db: db}
}

func (r *SaleRecorder) RecordSale(ctx context.Context, input *NewSale) (*SaleResponse, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	soldAt := time.Now().UTC()
	if strings.TrimSpace(input.SoldAt) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(input.SoldAt))
		if err != nil {
			return nil, ErrInvalidTimestamp
		}
		soldAt = parsed.UTC()
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var session SalesSession
	if err := tx.First(&session, input.SessionId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if session.Status != SessionStatusOpen {
		tx.Rollback()
		return nil, ErrSessionClosed
	}

	var item Item
	if err := tx.First(&item, input.ItemId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Quantity < input.Quantity {
		tx.Rollback()
		return nil, ErrInsufficientStock
	}

	unitPrice := item.UnitPriceCents
	if input.UnitPrice != nil {
		unitPrice = ToMinorUnits(*input.UnitPrice)
	}
	totalPrice := unitPrice * int64(input.Quantity)

	method := normalizePaymentMethod(input.PaymentMethod)
	var cashReceived, changeGiven *int64
	if method == PaymentMethodCash {
		if input.CashReceived == nil {
			tx.Rollback()
			return nil, ErrMissingCashAmount
		}
		received := ToMinorUnits(*input.CashReceived)
		if received < totalPrice {
			tx.Rollback()
			return nil, ErrInsufficientCash
		}
		change := received - totalPrice
		cashReceived = &received
		changeGiven = &change
	}

	sale := Sale{
		SessionId:         session.ID,
		ItemId:            item.ID,
		Quantity:          input.Quantity,
		UnitPriceCents:    unitPrice,
		TotalPriceCents:   totalPrice,
		PaymentMethod:     method,
		CashReceivedCents: cashReceived,
		ChangeGivenCents:  changeGiven,
		SoldAt:            soldAt,
		Note:              input.Note,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Same primitive as a manual adjustment, with reason "sale" and a
	// reference back to the sale row. A concurrent sale that emptied the
	// stock since the check above surfaces here as ErrInsufficientStock and
	// rolls everything back, including the sale row.
	if err := applyAdjustment(tx, &item, -input.Quantity, AdjustmentReasonSale, ReferenceTypeSale, sale.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	resp := sale.Response(item.Name, session.Title)
	return &resp, nil
}

// saleRow is the joined read shape used by GetSale/ListSales.
type saleRow struct {
	ID                int           `gorm:"column:id"`
	SessionId         int           `gorm:"column:session_id"`
	SessionTitle      string        `gorm:"column:session_title"`
	ItemId            int           `gorm:"column:item_id"`
	ItemName          string        `gorm:"column:item_name"`
	Quantity          int           `gorm:"column:quantity"`
	UnitPriceCents    int64         `gorm:"column:unit_price_cents"`
	TotalPriceCents   int64         `gorm:"column:total_price_cents"`
	PaymentMethod     PaymentMethod `gorm:"column:payment_method"`
	CashReceivedCents *int64        `gorm:"column:cash_received_cents"`
	ChangeGivenCents  *int64        `gorm:"column:change_given_cents"`
	SoldAt            time.Time     `gorm:"column:sold_at"`
	Note              string        `gorm:"column:note"`
	CreatedAt         time.Time     `gorm:"column:created_at"`
}

func (row *saleRow) response() SaleResponse {
	sale := Sale{
		ID:                row.ID,
		SessionId:         row.SessionId,
		ItemId:            row.ItemId,
		Quantity:          row.Quantity,
		UnitPriceCents:    row.UnitPriceCents,
		TotalPriceCents:   row.TotalPriceCents,
		PaymentMethod:     row.PaymentMethod,
		CashReceivedCents: row.CashReceivedCents,
		ChangeGivenCents:  row.ChangeGivenCents,
		SoldAt:            row.SoldAt,
		Note:              row.Note,
		CreatedAt:         row.CreatedAt,
	}
	return sale.Response(row.ItemName, row.SessionTitle)
}

func (r *SaleRecorder) saleQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("sales").
		Select(`sales.id, sales.session_id, sales_sessions.title AS session_title,
			sales.item_id, items.name AS item_name,
			sales.quantity, sales.unit_price_cents, sales.total_price_cents,
			sales.payment_method, sales.cash_received_cents, sales.change_given_cents,
			sales.sold_at, sales.note, sales.created_at`).
		Joins("JOIN items ON items.id = sales.item_id").
		Joins("JOIN sales_sessions ON sales_sessions.id = sales.session_id")
}

func (r *SaleRecorder) GetSale(ctx context.Context, id int) (*SaleResponse, error) {
	var rows []saleRow
	if err := r.saleQuery(ctx).Where("sales.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	resp := rows[0].response()
	return &resp, nil
}

// ListSales returns sales newest first, optionally filtered by session
// and/or item.
func (r *SaleRecorder) ListSales(ctx context.Context, sessionId, itemId *int) ([]SaleResponse, error) {
	q := r.saleQuery(ctx)
	if sessionId != nil {
		q = q.Where("sales.session_id = ?", *sessionId)
	}
	if itemId != nil {
		q = q.Where("sales.item_id = ?", *itemId)
	}
	var rows []saleRow
	if err := q.Order("sales.sold_at DESC, sales.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	responses := make([]SaleResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].response())
	}
	return responses, nil
}

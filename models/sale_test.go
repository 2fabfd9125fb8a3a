package models_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printforge/stall_backend/models"
)

func TestRecordSaleCard(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Articulated Dragon", "14.50", 10)
	session := seedOpenSession(t, db, "Saturday Market")

	sale, err := recorder.RecordSale(ctx, &models.NewSale{
		SessionId:     session.ID,
		ItemId:        item.ID,
		Quantity:      2,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.True(t, sale.UnitPrice.Equal(dec(t, "14.50")))
	assert.True(t, sale.TotalPrice.Equal(dec(t, "29.00")))
	assert.Equal(t, models.PaymentMethodCard, sale.PaymentMethod)
	assert.Nil(t, sale.CashReceived)
	assert.Nil(t, sale.ChangeGiven)
	assert.Equal(t, "Articulated Dragon", sale.ItemName)
	assert.Equal(t, "Saturday Market", sale.SessionTitle)

	ledger := models.NewStockLedger(db)
	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, current.Quantity)

	adjustments, err := ledger.ListAdjustments(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, -2, adjustments[0].Delta)
	assert.Equal(t, models.AdjustmentReasonSale, adjustments[0].Reason)
	assert.Equal(t, models.ReferenceTypeSale, adjustments[0].ReferenceType)
	assert.Equal(t, sale.ID, adjustments[0].ReferenceId)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 1)
	session := seedOpenSession(t, db, "Saturday Market")

	_, err := recorder.RecordSale(ctx, &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  2,
	})
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	current, err := models.NewStockLedger(db).GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Quantity)

	sales, err := recorder.ListSales(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleCashChange(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	sale, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId:     session.ID,
		ItemId:        item.ID,
		Quantity:      1,
		PaymentMethod: "cash",
		CashReceived:  decPtr(t, "10.00"),
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalPrice.Equal(dec(t, "8.00")))
	require.NotNil(t, sale.CashReceived)
	assert.True(t, sale.CashReceived.Equal(dec(t, "10.00")))
	require.NotNil(t, sale.ChangeGiven)
	assert.True(t, sale.ChangeGiven.Equal(dec(t, "2.00")))
}

func TestRecordSaleInsufficientCash(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	_, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId:     session.ID,
		ItemId:        item.ID,
		Quantity:      1,
		PaymentMethod: "cash",
		CashReceived:  decPtr(t, "5.00"),
	})
	assert.ErrorIs(t, err, models.ErrInsufficientCash)
}

func TestRecordSaleMissingCashAmount(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	_, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId:     session.ID,
		ItemId:        item.ID,
		Quantity:      1,
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, models.ErrMissingCashAmount)
}

func TestRecordSaleSessionGating(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	_, err := models.NewSessionStore(db).CloseSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = recorder.RecordSale(ctx, &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, models.ErrSessionClosed)

	// no sale row, no debit, no audit row
	sales, err := recorder.ListSales(ctx, &session.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)

	ledger := models.NewStockLedger(db)
	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, current.Quantity)

	adjustments, err := ledger.ListAdjustments(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, adjustments)
}

func TestRecordSaleSnapshotsUnitPrice(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	recorder := models.NewSaleRecorder(db)
	ledger := models.NewStockLedger(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	sale, err := recorder.RecordSale(ctx, &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = ledger.UpdateItem(ctx, item.ID, &models.UpdateItem{UnitPrice: decPtr(t, "12.00")})
	require.NoError(t, err)

	fetched, err := recorder.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, fetched.UnitPrice.Equal(dec(t, "8.00")))
	assert.True(t, fetched.TotalPrice.Equal(dec(t, "8.00")))
}

func TestRecordSaleExplicitUnitPrice(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	sale, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  2,
		UnitPrice: decPtr(t, "7.00"), // haggled down
	})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.Equal(dec(t, "7.00")))
	assert.True(t, sale.TotalPrice.Equal(dec(t, "14.00")))
}

func TestRecordSaleUnknownPaymentMethodDefaultsToCard(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	sale, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId:     session.ID,
		ItemId:        item.ID,
		Quantity:      1,
		PaymentMethod: "bartering",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCard, sale.PaymentMethod)
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	for _, q := range []int{0, -1} {
		_, err := recorder.RecordSale(context.Background(), &models.NewSale{
			SessionId: session.ID,
			ItemId:    item.ID,
			Quantity:  q,
		})
		assert.ErrorIs(t, err, models.ErrInvalidQuantity, "quantity %d", q)
	}
}

func TestRecordSaleSoldAt(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	backdated := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	sale, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  1,
		SoldAt:    backdated.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.True(t, sale.SoldAt.Equal(backdated))

	_, err = recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId: session.ID,
		ItemId:    item.ID,
		Quantity:  1,
		SoldAt:    "yesterday-ish",
	})
	assert.ErrorIs(t, err, models.ErrInvalidTimestamp)
}

func TestRecordSaleUnknownReferences(t *testing.T) {
	db := openTestDB(t)
	recorder := models.NewSaleRecorder(db)
	item := seedItem(t, db, "Phone Stand", "8.00", 5)
	session := seedOpenSession(t, db, "Saturday Market")

	_, err := recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId: 999,
		ItemId:    item.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = recorder.RecordSale(context.Background(), &models.NewSale{
		SessionId: session.ID,
		ItemId:    999,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListSalesFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	recorder := models.NewSaleRecorder(db)
	dragon := seedItem(t, db, "Dragon", "14.50", 10)
	stand := seedItem(t, db, "Phone Stand", "8.00", 10)
	session := seedOpenSession(t, db, "Saturday Market")

	for _, itemId := range []int{dragon.ID, stand.ID, dragon.ID} {
		_, err := recorder.RecordSale(ctx, &models.NewSale{
			SessionId: session.ID,
			ItemId:    itemId,
			Quantity:  1,
		})
		require.NoError(t, err)
	}

	all, err := recorder.ListSales(ctx, &session.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dragonOnly, err := recorder.ListSales(ctx, &session.ID, &dragon.ID)
	require.NoError(t, err)
	assert.Len(t, dragonOnly, 2)
	for _, s := range dragonOnly {
		assert.Equal(t, "Dragon", s.ItemName)
	}
}

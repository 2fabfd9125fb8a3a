package models_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printforge/stall_backend/models"
)

func TestCreateExpense(t *testing.T) {
	db := openTestDB(t)
	store := models.NewExpenseStore(db)

	expense, err := store.CreateExpense(context.Background(), &models.NewExpense{
		Description: "Stall fee",
		Category:    "fees",
		Amount:      dec(t, "25.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), expense.AmountCents)
	assert.False(t, expense.ExpenseDate.IsZero())

	resp := expense.Response()
	assert.True(t, resp.Amount.Equal(dec(t, "25.00")))
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	db := openTestDB(t)
	store := models.NewExpenseStore(db)
	ctx := context.Background()

	_, err := store.CreateExpense(ctx, &models.NewExpense{
		Description: "bad",
		Amount:      dec(t, "0"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = store.CreateExpense(ctx, &models.NewExpense{
		Description: "bad",
		Amount:      dec(t, "-5.00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestDeleteExpense(t *testing.T) {
	db := openTestDB(t)
	store := models.NewExpenseStore(db)
	ctx := context.Background()

	expense, err := store.CreateExpense(ctx, &models.NewExpense{
		Description: "Tape",
		Amount:      dec(t, "3.20"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpense(ctx, expense.ID))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	assert.ErrorIs(t, store.DeleteExpense(ctx, expense.ID), models.ErrNotFound)
}

package models_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printforge/stall_backend/models"
)

func TestCreateSpoolDefaultsRemainingToWeight(t *testing.T) {
	db := openTestDB(t)
	ledger := models.NewFilamentLedger(db)

	spool, err := ledger.CreateSpool(context.Background(), &models.NewFilamentSpool{
		Material:    "PLA",
		Color:       "galaxy black",
		WeightGrams: dec(t, "1000"),
	})
	require.NoError(t, err)
	assert.True(t, spool.RemainingGrams.Equal(dec(t, "1000")))

	partial, err := ledger.CreateSpool(context.Background(), &models.NewFilamentSpool{
		Material:       "PETG",
		WeightGrams:    dec(t, "1000"),
		RemainingGrams: decPtr(t, "350.5"),
	})
	require.NoError(t, err)
	assert.True(t, partial.RemainingGrams.Equal(dec(t, "350.5")))
}

func TestLogUsageDebitsSpool(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ledger := models.NewFilamentLedger(db)
	spool := seedSpool(t, db, "PLA", "1000")

	usage, updated, err := ledger.LogUsage(ctx, spool.ID, &models.NewFilamentUsage{
		UsedGrams: dec(t, "130"),
		Reason:    "dragon batch",
		Reference: "print-job 7",
	})
	require.NoError(t, err)
	assert.True(t, usage.UsedGrams.Equal(dec(t, "130")))
	assert.True(t, updated.RemainingGrams.Equal(dec(t, "870")))

	resp, err := ledger.SpoolResponse(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UsageCount)
	assert.True(t, resp.TotalUsedGrams.Equal(dec(t, "130")))
}

func TestLogUsageInsufficientFilament(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ledger := models.NewFilamentLedger(db)
	spool, err := ledger.CreateSpool(ctx, &models.NewFilamentSpool{
		Material:       "PLA",
		WeightGrams:    dec(t, "1000"),
		RemainingGrams: decPtr(t, "100"),
	})
	require.NoError(t, err)

	_, _, err = ledger.LogUsage(ctx, spool.ID, &models.NewFilamentUsage{
		UsedGrams: dec(t, "130"),
	})
	assert.ErrorIs(t, err, models.ErrInsufficientFilament)

	// no partial debit, no log row
	current, err := ledger.GetSpool(ctx, spool.ID)
	require.NoError(t, err)
	assert.True(t, current.RemainingGrams.Equal(dec(t, "100")))

	logs, err := ledger.ListUsage(ctx, spool.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLogUsageInvalidAmount(t *testing.T) {
	db := openTestDB(t)
	ledger := models.NewFilamentLedger(db)
	spool := seedSpool(t, db, "PLA", "1000")

	for _, grams := range []string{"0", "-5"} {
		_, _, err := ledger.LogUsage(context.Background(), spool.ID, &models.NewFilamentUsage{
			UsedGrams: dec(t, grams),
		})
		assert.ErrorIs(t, err, models.ErrInvalidAmount, "grams %s", grams)
	}
}

func TestLogUsageUnknownSpool(t *testing.T) {
	db := openTestDB(t)
	ledger := models.NewFilamentLedger(db)

	_, _, err := ledger.LogUsage(context.Background(), 42, &models.NewFilamentUsage{
		UsedGrams: dec(t, "10"),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// Editing remaining grams above the nominal weight is allowed; the ledger
// does not clamp remaining_grams to weight_grams on update.
func TestUpdateSpoolPermitsRemainingAboveWeight(t *testing.T) {
	db := openTestDB(t)
	ledger := models.NewFilamentLedger(db)
	spool := seedSpool(t, db, "PLA", "1000")

	updated, err := ledger.UpdateSpool(context.Background(), spool.ID, &models.UpdateFilamentSpool{
		RemainingGrams: decPtr(t, "1200"),
	})
	require.NoError(t, err)
	assert.True(t, updated.RemainingGrams.Equal(dec(t, "1200")))

	_, err = ledger.UpdateSpool(context.Background(), spool.ID, &models.UpdateFilamentSpool{
		RemainingGrams: decPtr(t, "-1"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestSpoolUsageAggregates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ledger := models.NewFilamentLedger(db)
	spool := seedSpool(t, db, "PETG", "1000")

	for _, grams := range []string{"100", "55.5", "20"} {
		_, _, err := ledger.LogUsage(ctx, spool.ID, &models.NewFilamentUsage{
			UsedGrams: dec(t, grams),
		})
		require.NoError(t, err)
	}

	current, err := ledger.GetSpool(ctx, spool.ID)
	require.NoError(t, err)
	resp, err := ledger.SpoolResponse(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.UsageCount)
	assert.True(t, resp.TotalUsedGrams.Equal(dec(t, "175.5")))
	assert.True(t, resp.RemainingGrams.Equal(dec(t, "824.5")))
}

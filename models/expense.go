package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID          int       `gorm:"primary_key"`
	Description string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:100"`
	AmountCents int64     `gorm:"not null"`
	ExpenseDate time.Time `gorm:"not null;index"`
	Note        string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type NewExpense struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expenseDate"`
	Note        string          `json:"note"`
}

type ExpenseResponse struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (e *Expense) Response() ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      ToDecimal(e.AmountCents),
		ExpenseDate: e.ExpenseDate,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type ExpenseStore struct {
	db *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

func (s *ExpenseStore) CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	amount := ToMinorUnits(input.Amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	expenseDate := time.Now().UTC()
	if input.ExpenseDate != nil {
		expenseDate = input.ExpenseDate.UTC()
	}
	expense := Expense{
		Description: input.Description,
		Category:    input.Category,
		AmountCents: amount,
		ExpenseDate: expenseDate,
		Note:        input.Note,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseStore) ListExpenses(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	err := s.db.WithContext(ctx).
		Order("expense_date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *ExpenseStore) DeleteExpense(ctx context.Context, id int) error {
	var expense Expense
	if err := s.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&expense).Error
}

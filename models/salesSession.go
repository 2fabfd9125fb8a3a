package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
)

// SalesSession is a bounded trading period. It starts open and transitions
// once, irreversibly, to closed. Sales can only be recorded while open.
type SalesSession struct {
	ID          int           `gorm:"primary_key"`
	Title       string        `gorm:"size:255;not null"`
	Location    string        `gorm:"size:255"`
	SessionDate time.Time     `gorm:"not null"`
	Weather     string        `gorm:"size:100"`
	Status      SessionStatus `gorm:"size:20;not null;default:'open'"`
	StartedAt   time.Time     `gorm:"not null"`
	EndedAt     *time.Time    `gorm:"default:null"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`
}

type NewSalesSession struct {
	Title       string     `json:"title" binding:"required"`
	Location    string     `json:"location"`
	SessionDate *time.Time `json:"sessionDate"`
	Weather     string     `json:"weather"`
}

type SalesSessionResponse struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Location    string        `json:"location,omitempty"`
	SessionDate time.Time     `json:"sessionDate"`
	Weather     string        `json:"weather,omitempty"`
	Status      SessionStatus `json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	EndedAt     *time.Time    `json:"endedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (s *SalesSession) Response() SalesSessionResponse {
	return SalesSessionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Location:    s.Location,
		SessionDate: s.SessionDate,
		Weather:     s.Weather,
		Status:      s.Status,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SessionSummary is a read-side roll-up over a session's sales rows.
type SessionSummary struct {
	SessionId    int             `json:"sessionId"`
	Title        string          `json:"title"`
	Status       SessionStatus   `json:"status"`
	SaleCount    int64           `json:"saleCount"`
	UnitsSold    int64           `json:"unitsSold"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	CardRevenue  decimal.Decimal `json:"cardRevenue"`
	CashRevenue  decimal.Decimal `json:"cashRevenue"`
}

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) CreateSession(ctx context.Context, input *NewSalesSession) (*SalesSession, error) {
	now := time.Now().UTC()
	sessionDate := now.Truncate(24 * time.Hour)
	if input.SessionDate != nil {
		sessionDate = input.SessionDate.UTC()
	}
	session := SalesSession{
		Title:       input.Title,
		Location:    input.Location,
		SessionDate: sessionDate,
		Weather:     input.Weather,
		Status:      SessionStatusOpen,
		StartedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) GetSession(ctx context.Context, id int) (*SalesSession, error) {
	var session SalesSession
	if err := s.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) ListSessions(ctx context.Context) ([]SalesSession, error) {
	var sessions []SalesSession
	err := s.db.WithContext(ctx).
		Order("session_date DESC, id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// CloseSession moves an open session to closed and stamps endedAt. Closing
// an already-closed session is a no-op that returns the current state; there
// is no transition back to open.
func (s *SessionStore) CloseSession(ctx context.Context, id int) (*SalesSession, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var session SalesSession
	if err := tx.First(&session, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if session.Status == SessionStatusClosed {
		tx.Rollback()
		return &session, nil
	}

	endedAt := time.Now().UTC()
	err := tx.Model(&session).Updates(map[string]interface{}{
		"status":   SessionStatusClosed,
		"ended_at": endedAt,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	session.Status = SessionStatusClosed
	session.EndedAt = &endedAt
	return &session, nil
}

// Summary rolls a session's sales up into counts and revenue split by
// payment method. Pure read; no invariants beyond the sales rows themselves.
func (s *SessionStore) Summary(ctx context.Context, id int) (*SessionSummary, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	type row struct {
		SaleCount    int64 `gorm:"column:sale_count"`
		UnitsSold    int64 `gorm:"column:units_sold"`
		GrossCents   int64 `gorm:"column:gross_cents"`
		CardCents    int64 `gorm:"column:card_cents"`
		CashCents    int64 `gorm:"column:cash_cents"`
	}
	var r row
	err = s.db.WithContext(ctx).Model(&Sale{}).
		Select(`COUNT(*) AS sale_count,
			COALESCE(SUM(quantity), 0) AS units_sold,
			COALESCE(SUM(total_price_cents), 0) AS gross_cents,
			COALESCE(SUM(CASE WHEN payment_method = 'card' THEN total_price_cents ELSE 0 END), 0) AS card_cents,
			COALESCE(SUM(CASE WHEN payment_method = 'cash' THEN total_price_cents ELSE 0 END), 0) AS cash_cents`).
		Where("session_id = ?", id).
		Scan(&r).Error
	if err != nil {
		return nil, err
	}

	return &SessionSummary{
		SessionId:    session.ID,
		Title:        session.Title,
		Status:       session.Status,
		SaleCount:    r.SaleCount,
		UnitsSold:    r.UnitsSold,
		GrossRevenue: ToDecimal(r.GrossCents),
		CardRevenue:  ToDecimal(r.CardCents),
		CashRevenue:  ToDecimal(r.CashCents),
	}, nil
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PrintJobStatus string

const (
	PrintJobStatusQueued   PrintJobStatus = "queued"
	PrintJobStatusPrinting PrintJobStatus = "printing"
	PrintJobStatusDone     PrintJobStatus = "done"
	PrintJobStatusFailed   PrintJobStatus = "failed"
)

func ValidPrintJobStatus(s string) bool {
	switch PrintJobStatus(s) {
	case PrintJobStatusQueued, PrintJobStatusPrinting, PrintJobStatusDone, PrintJobStatusFailed:
		return true
	}
	return false
}

// PrintJob is a queue entry. Marking a job done does NOT debit the linked
// spool; filament leaves a spool through the filament ledger only, so the
// estimate here and the actual usage log can differ.
type PrintJob struct {
	ID               int             `gorm:"primary_key"`
	Name             string          `gorm:"size:255;not null"`
	Printer          string          `gorm:"size:100"`
	ItemId           *int            `gorm:"index;default:null"`
	SpoolId          *int            `gorm:"index;default:null"`
	EstimatedGrams   decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	EstimatedMinutes int             `gorm:"default:0"`
	Status           PrintJobStatus  `gorm:"size:20;not null;default:'queued'"`
	QueuedAt         time.Time       `gorm:"not null"`
	StartedAt        *time.Time      `gorm:"default:null"`
	FinishedAt       *time.Time      `gorm:"default:null"`
	Notes            string          `gorm:"type:text"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

type NewPrintJob struct {
	Name             string          `json:"name" binding:"required"`
	Printer          string          `json:"printer"`
	ItemId           *int            `json:"itemId"`
	SpoolId          *int            `json:"spoolId"`
	EstimatedGrams   decimal.Decimal `json:"estimatedGrams"`
	EstimatedMinutes int             `json:"estimatedMinutes" binding:"gte=0"`
	Notes            string          `json:"notes"`
}

type PrintJobStatusUpdate struct {
	Status string `json:"status" binding:"required,printjobstatus"`
}

type PrintJobResponse struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Printer          string          `json:"printer,omitempty"`
	ItemId           *int            `json:"itemId,omitempty"`
	SpoolId          *int            `json:"spoolId,omitempty"`
	EstimatedGrams   decimal.Decimal `json:"estimatedGrams"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	Status           PrintJobStatus  `json:"status"`
	QueuedAt         time.Time       `json:"queuedAt"`
	StartedAt        *time.Time      `json:"startedAt,omitempty"`
	FinishedAt       *time.Time      `json:"finishedAt,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (j *PrintJob) Response() PrintJobResponse {
	return PrintJobResponse{
		ID:               j.ID,
		Name:             j.Name,
		Printer:          j.Printer,
		ItemId:           j.ItemId,
		SpoolId:          j.SpoolId,
		EstimatedGrams:   j.EstimatedGrams,
		EstimatedMinutes: j.EstimatedMinutes,
		Status:           j.Status,
		QueuedAt:         j.QueuedAt,
		StartedAt:        j.StartedAt,
		FinishedAt:       j.FinishedAt,
		Notes:            j.Notes,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

type PrintQueue struct {
	db *gorm.DB
}

func NewPrintQueue(db *gorm.DB) *PrintQueue {
	return &PrintQueue{db: db}
}

func (q *PrintQueue) CreateJob(ctx context.Context, input *NewPrintJob) (*PrintJob, error) {
	job := PrintJob{
		Name:             input.Name,
		Printer:          input.Printer,
		ItemId:           input.ItemId,
		SpoolId:          input.SpoolId,
		EstimatedGrams:   input.EstimatedGrams,
		EstimatedMinutes: input.EstimatedMinutes,
		Status:           PrintJobStatusQueued,
		QueuedAt:         time.Now().UTC(),
		Notes:            input.Notes,
	}
	if err := q.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *PrintQueue) GetJob(ctx context.Context, id int) (*PrintJob, error) {
	var job PrintJob
	if err := q.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (q *PrintQueue) ListJobs(ctx context.Context, status *PrintJobStatus) ([]PrintJob, error) {
	dbq := q.db.WithContext(ctx)
	if status != nil {
		dbq = dbq.Where("status = ?", *status)
	}
	var jobs []PrintJob
	if err := dbq.Order("queued_at ASC, id ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateStatus moves a job through the queue, stamping startedAt on the
// first transition to printing and finishedAt on done/failed.
func (q *PrintQueue) UpdateStatus(ctx context.Context, id int, status PrintJobStatus) (*PrintJob, error) {
	job, err := q.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": status}
	if status == PrintJobStatusPrinting && job.StartedAt == nil {
		updates["started_at"] = now
	}
	if (status == PrintJobStatusDone || status == PrintJobStatusFailed) && job.FinishedAt == nil {
		updates["finished_at"] = now
	}
	if err := q.db.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, err
	}
	return q.GetJob(ctx, id)
}

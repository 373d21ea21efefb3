package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/maintenance-system/maintenance-service/internal/errs"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

// RequestServicer is what the handlers depend on.
type RequestServicer interface {
	Create(ctx context.Context, m *model.MaintenanceRequest) error
	List(ctx context.Context) ([]model.MaintenanceRequest, error)
	GetByID(ctx context.Context, id uint64) (*model.MaintenanceRequest, error)
	Start(ctx context.Context, id uint64, technicianName string) (*model.MaintenanceRequest, error)
	Finish(ctx context.Context, id uint64, resolutionNotes string) (*model.MaintenanceRequest, error)
}

type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Create stamps request date/time and stores the record at status
// aberto regardless of any status the caller may have set.
func (s *RequestService) Create(ctx context.Context, m *model.MaintenanceRequest) error {
	now := time.Now()
	m.ID = 0
	m.Status = model.StatusOpen
	m.RequestDate = now.Format("2006-01-02")
	m.RequestTime = now.Format("15:04:05")
	m.TechnicianName = ""
	m.StartDatetime = nil
	m.EndDatetime = nil
	m.ResolutionNotes = ""
	m.TotalTime = ""
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *RequestService) List(ctx context.Context) ([]model.MaintenanceRequest, error) {
	var items []model.MaintenanceRequest
	err := s.db.WithContext(ctx).
		Order("request_date DESC, request_time DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RequestService) GetByID(ctx context.Context, id uint64) (*model.MaintenanceRequest, error) {
	var m model.MaintenanceRequest
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Start moves aberto -> em_andamento. The flip is a guarded update on
// the current status, so two concurrent starts cannot both win: the
// loser sees zero rows affected and gets ErrAlreadyStarted.
func (s *RequestService) Start(ctx context.Context, id uint64, technicianName string) (*model.MaintenanceRequest, error) {
	if technicianName == "" {
		return nil, errs.ErrTechnicianRequired
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanStart() {
		return nil, errs.ErrAlreadyStarted
	}
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, model.StatusOpen).
		Updates(map[string]interface{}{
			"status":          model.StatusInProgress,
			"technician_name": technicianName,
			"start_datetime":  now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrAlreadyStarted
	}
	return s.GetByID(ctx, id)
}

// Finish moves em_andamento -> concluido, stamping end_datetime and the
// formatted total_time. Same guarded-update scheme as Start.
func (s *RequestService) Finish(ctx context.Context, id uint64, resolutionNotes string) (*model.MaintenanceRequest, error) {
	if resolutionNotes == "" {
		return nil, errs.ErrNotesRequired
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanFinish() || m.StartDatetime == nil {
		return nil, errs.ErrNotInProgress
	}
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, model.StatusInProgress).
		Updates(map[string]interface{}{
			"status":           model.StatusDone,
			"resolution_notes": resolutionNotes,
			"end_datetime":     now,
			"total_time":       model.FormatTotalTime(*m.StartDatetime, now),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrNotInProgress
	}
	return s.GetByID(ctx, id)
}

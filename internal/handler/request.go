package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maintenance-system/maintenance-service/internal/errs"
	"github.com/maintenance-system/maintenance-service/internal/kafka"
	"github.com/maintenance-system/maintenance-service/internal/model"
	"github.com/maintenance-system/maintenance-service/internal/notify"
	"github.com/maintenance-system/maintenance-service/internal/service"
)

type RequestHandler struct {
	svc      service.RequestServicer
	producer kafka.RequestEventProducer
	panel    *notify.Client
}

func NewRequestHandler(svc service.RequestServicer, producer kafka.RequestEventProducer, panel *notify.Client) *RequestHandler {
	return &RequestHandler{svc: svc, producer: producer, panel: panel}
}

type createRequestBody struct {
	RequesterName   string `json:"requester_name" binding:"required"`
	Department      string `json:"department" binding:"required"`
	MaintenanceType string `json:"maintenance_type" binding:"required,oneof=eletrica mecanica outros"`
	EquipmentStatus string `json:"equipment_status" binding:"required,oneof=funcionando alerta inoperante"`

	EquipmentLocationPress        string `json:"equipment_location_press"`
	EquipmentLocationPressNumber  string `json:"equipment_location_press_number"`
	EquipmentLocationThread       string `json:"equipment_location_thread"`
	EquipmentLocationThreadNumber string `json:"equipment_location_thread_number"`
	EquipmentLocationOther        string `json:"equipment_location_other"`
	EquipmentLocationOtherNumber  string `json:"equipment_location_other_number"`

	ProblemDescription string `json:"problem_description" binding:"required"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Preencha todos os campos obrigatórios."})
		return
	}
	m := &model.MaintenanceRequest{
		RequesterName:                 req.RequesterName,
		Department:                    req.Department,
		MaintenanceType:               model.MaintenanceType(req.MaintenanceType),
		EquipmentStatus:               model.EquipmentStatus(req.EquipmentStatus),
		EquipmentLocationPress:        req.EquipmentLocationPress,
		EquipmentLocationPressNumber:  req.EquipmentLocationPressNumber,
		EquipmentLocationThread:       req.EquipmentLocationThread,
		EquipmentLocationThreadNumber: req.EquipmentLocationThreadNumber,
		EquipmentLocationOther:        req.EquipmentLocationOther,
		EquipmentLocationOtherNumber:  req.EquipmentLocationOtherNumber,
		ProblemDescription:            req.ProblemDescription,
	}
	if err := h.svc.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Falha ao criar a requisição."})
		return
	}
	h.produce("request.created", m)
	c.JSON(http.StatusCreated, m)
}

func (h *RequestHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Falha ao carregar as requisições."})
		return
	}
	if items == nil {
		items = []model.MaintenanceRequest{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type startBody struct {
	TechnicianName string `json:"technician_name" binding:"required"`
}

func (h *RequestHandler) Start(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req startBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Informe o nome do técnico."})
		return
	}
	m, err := h.svc.Start(c.Request.Context(), id, req.TechnicianName)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.produce("request.started", m)
	c.JSON(http.StatusOK, m)
}

type finishBody struct {
	ResolutionNotes string `json:"resolution_notes" binding:"required"`
}

func (h *RequestHandler) Finish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req finishBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Informe a descrição da manutenção executada."})
		return
	}
	m, err := h.svc.Finish(c.Request.Context(), id, req.ResolutionNotes)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.produce("request.finished", m)
	c.JSON(http.StatusOK, m)
}

// produce fires the side channels. Fire-and-forget with their own
// timeout so they survive request cancellation.
func (h *RequestHandler) produce(event string, m *model.MaintenanceRequest) {
	if h.producer != nil {
		eventCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		go func() {
			defer cancel()
			h.producer.ProduceRequestEvent(eventCtx, event, m)
		}()
	}
	if h.panel != nil {
		h.panel.NotifyAsync(event, m)
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func (h *RequestHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, errs.ErrAlreadyStarted):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Manutenção já iniciada ou concluída."})
	case errors.Is(err, errs.ErrNotInProgress):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Manutenção não foi iniciada ou já está concluída."})
	case errors.Is(err, errs.ErrTechnicianRequired):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Informe o nome do técnico."})
	case errors.Is(err, errs.ErrNotesRequired):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Informe a descrição da manutenção executada."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

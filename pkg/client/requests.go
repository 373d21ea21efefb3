package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingFields — a required creation field is empty; nothing
	// was sent over the network.
	ErrMissingFields = errors.New("Por favor, preencha todos os campos obrigatórios.")
	// ErrStartNotAllowed — start is only offered on an open request
	// with a technician name.
	ErrStartNotAllowed = errors.New("Manutenção já iniciada ou concluída.")
	// ErrFinishNotAllowed — finish is only offered on an in-progress
	// request with resolution notes.
	ErrFinishNotAllowed = errors.New("Manutenção não foi iniciada ou já está concluída.")
)

// CreateRequestInput carries the operator-supplied fields.
type CreateRequestInput struct {
	RequesterName   string `json:"requester_name"`
	Department      string `json:"department"`
	MaintenanceType string `json:"maintenance_type"`
	EquipmentStatus string `json:"equipment_status"`

	EquipmentLocationPress        string `json:"equipment_location_press,omitempty"`
	EquipmentLocationPressNumber  string `json:"equipment_location_press_number,omitempty"`
	EquipmentLocationThread       string `json:"equipment_location_thread,omitempty"`
	EquipmentLocationThreadNumber string `json:"equipment_location_thread_number,omitempty"`
	EquipmentLocationOther        string `json:"equipment_location_other,omitempty"`
	EquipmentLocationOtherNumber  string `json:"equipment_location_other_number,omitempty"`

	ProblemDescription string `json:"problem_description"`
}

// CreateRequest validates the required fields locally before any
// network call, then submits and returns the server's record.
func (c *Client) CreateRequest(ctx context.Context, in CreateRequestInput) (*MaintenanceRequest, error) {
	if in.RequesterName == "" || in.Department == "" || in.MaintenanceType == "" ||
		in.EquipmentStatus == "" || in.ProblemDescription == "" {
		return nil, ErrMissingFields
	}
	var out MaintenanceRequest
	if err := c.doJSON(ctx, http.MethodPost, "/api/maintenance-requests/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRequests fetches every record. An empty list is a valid result,
// not an error.
func (c *Client) ListRequests(ctx context.Context) ([]MaintenanceRequest, error) {
	var out []MaintenanceRequest
	if err := c.doJSON(ctx, http.MethodGet, "/api/maintenance-requests/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRequest fetches one record; not-found surfaces as an error.
func (c *Client) GetRequest(ctx context.Context, id uint64) (*MaintenanceRequest, error) {
	var out MaintenanceRequest
	path := fmt.Sprintf("/api/maintenance-requests/%d/", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartRequest runs the start transition and replaces *m with the
// server's response; the server owns status and timestamps. The local
// guard mirrors the server's rule, it does not replace it.
func (c *Client) StartRequest(ctx context.Context, m *MaintenanceRequest, technicianName string) error {
	if !m.CanStart() || technicianName == "" {
		return ErrStartNotAllowed
	}
	var out MaintenanceRequest
	path := fmt.Sprintf("/api/maintenance-requests/%d/start/", m.ID)
	body := map[string]string{"technician_name": technicianName}
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// FinishRequest runs the finish transition and replaces *m with the
// server's response.
func (c *Client) FinishRequest(ctx context.Context, m *MaintenanceRequest, resolutionNotes string) error {
	if !m.CanFinish() || resolutionNotes == "" {
		return ErrFinishNotAllowed
	}
	var out MaintenanceRequest
	path := fmt.Sprintf("/api/maintenance-requests/%d/finish/", m.ID)
	body := map[string]string{"resolution_notes": resolutionNotes}
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

package client

import "time"

type Status string

const (
	StatusOpen       Status = "aberto"
	StatusInProgress Status = "em_andamento"
	StatusDone       Status = "concluido"
)

type Role string

const (
	RoleOperator    Role = "operator"
	RoleMaintenance Role = "maintenance"
)

// MaintenanceRequest mirrors the server's wire shape. Status, the
// execution timestamps and TotalTime are read-only here by contract:
// the client renders what the server computed and never derives them.
type MaintenanceRequest struct {
	ID                uint64 `json:"id"`
	MaintenanceNumber uint64 `json:"maintenance_number,omitempty"`

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

	RequestDate string `json:"request_date"`
	RequestTime string `json:"request_time"`

	Status          Status     `json:"status"`
	TechnicianName  string     `json:"technician_name,omitempty"`
	StartDatetime   *time.Time `json:"start_datetime,omitempty"`
	EndDatetime     *time.Time `json:"end_datetime,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	TotalTime       string     `json:"total_time,omitempty"`
}

// CanStart mirrors the server constraint: start is only offered while
// the request is still open.
func (m *MaintenanceRequest) CanStart() bool {
	return m.Status == StatusOpen
}

// CanFinish mirrors the server constraint: finish is only offered while
// the maintenance is in progress.
func (m *MaintenanceRequest) CanFinish() bool {
	return m.Status == StatusInProgress
}

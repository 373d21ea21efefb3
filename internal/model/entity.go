package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusOpen       Status = "aberto"
	StatusInProgress Status = "em_andamento"
	StatusDone       Status = "concluido"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type MaintenanceType string

const (
	MaintenanceTypeElectrical MaintenanceType = "eletrica"
	MaintenanceTypeMechanical MaintenanceType = "mecanica"
	MaintenanceTypeOther      MaintenanceType = "outros"
)

type EquipmentStatus string

const (
	EquipmentStatusWorking     EquipmentStatus = "funcionando"
	EquipmentStatusAlert       EquipmentStatus = "alerta"
	EquipmentStatusInoperative EquipmentStatus = "inoperante"
)

// Role is a closed set. Switches over it must handle every constant;
// a new role is a compile-visible change here, not a stray string.
type Role string

const (
	RoleOperator    Role = "operator"
	RoleMaintenance Role = "maintenance"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleMaintenance:
		return true
	}
	return false
}

type User struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaintenanceRequest is the one domain entity. Status, the execution
// timestamps and TotalTime are owned by the server: clients render them
// and never derive them locally.
type MaintenanceRequest struct {
	ID                uint64 `gorm:"primaryKey" json:"id"`
	MaintenanceNumber uint64 `gorm:"-" json:"maintenance_number,omitempty"`

	RequesterName   string          `gorm:"type:varchar(100);not null" json:"requester_name"`
	Department      string          `gorm:"type:varchar(100);not null" json:"department"`
	MaintenanceType MaintenanceType `gorm:"type:varchar(20);not null" json:"maintenance_type"`
	EquipmentStatus EquipmentStatus `gorm:"type:varchar(20);not null" json:"equipment_status"`

	EquipmentLocationPress        string `gorm:"type:varchar(100)" json:"equipment_location_press,omitempty"`
	EquipmentLocationPressNumber  string `gorm:"type:varchar(50)" json:"equipment_location_press_number,omitempty"`
	EquipmentLocationThread       string `gorm:"type:varchar(100)" json:"equipment_location_thread,omitempty"`
	EquipmentLocationThreadNumber string `gorm:"type:varchar(50)" json:"equipment_location_thread_number,omitempty"`
	EquipmentLocationOther        string `gorm:"type:varchar(100)" json:"equipment_location_other,omitempty"`
	EquipmentLocationOtherNumber  string `gorm:"type:varchar(50)" json:"equipment_location_other_number,omitempty"`

	ProblemDescription string `gorm:"type:text;not null" json:"problem_description"`

	RequestDate string `gorm:"type:varchar(10)" json:"request_date"`
	RequestTime string `gorm:"type:varchar(8)" json:"request_time"`

	Status          Status     `gorm:"type:varchar(20);index;not null" json:"status"`
	TechnicianName  string     `gorm:"type:varchar(100)" json:"technician_name,omitempty"`
	StartDatetime   *time.Time `json:"start_datetime,omitempty"`
	EndDatetime     *time.Time `json:"end_datetime,omitempty"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes,omitempty"`
	TotalTime       string     `gorm:"type:varchar(50)" json:"total_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// MaintenanceNumber is the human-facing identifier; it mirrors the id.
func (m *MaintenanceRequest) AfterFind(*gorm.DB) error {
	m.MaintenanceNumber = m.ID
	return nil
}

func (m *MaintenanceRequest) AfterCreate(*gorm.DB) error {
	m.MaintenanceNumber = m.ID
	return nil
}

// CanStart reports whether the start transition is allowed from the
// current status. aberto -> em_andamento is the only entry.
func (m *MaintenanceRequest) CanStart() bool {
	return m.Status == StatusOpen
}

// CanFinish reports whether the finish transition is allowed from the
// current status. em_andamento -> concluido is the only exit.
func (m *MaintenanceRequest) CanFinish() bool {
	return m.Status == StatusInProgress
}

// FormatTotalTime renders the execution duration as "1d 2h 30m",
// omitting zero parts; anything under a minute is "0m".
func FormatTotalTime(start, end time.Time) string {
	total := int(end.Sub(start).Seconds())
	if total < 0 {
		total = 0
	}
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

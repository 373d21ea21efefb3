package model

import (
	"testing"
	"time"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		canStart  bool
		canFinish bool
	}{
		{name: "aberto pode iniciar", status: StatusOpen, canStart: true, canFinish: false},
		{name: "em_andamento pode finalizar", status: StatusInProgress, canStart: false, canFinish: true},
		{name: "concluido é terminal", status: StatusDone, canStart: false, canFinish: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MaintenanceRequest{Status: tt.status}
			if got := m.CanStart(); got != tt.canStart {
				t.Errorf("CanStart() = %v, want %v", got, tt.canStart)
			}
			if got := m.CanFinish(); got != tt.canFinish {
				t.Errorf("CanFinish() = %v, want %v", got, tt.canFinish)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusInProgress, StatusDone} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false", s)
		}
	}
	for _, s := range []Status{"", "fechado", "open"} {
		if s.Valid() {
			t.Errorf("Status(%q).Valid() = true", s)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleOperator.Valid() || !RoleMaintenance.Valid() {
		t.Error("known roles must be valid")
	}
	if Role("admin").Valid() || Role("").Valid() {
		t.Error("unknown roles must be invalid")
	}
}

func TestFormatTotalTime(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{name: "menos de um minuto", end: base.Add(30 * time.Second), want: "0m"},
		{name: "somente minutos", end: base.Add(45 * time.Minute), want: "45m"},
		{name: "horas e minutos", end: base.Add(2*time.Hour + 5*time.Minute), want: "2h 5m"},
		{name: "horas exatas", end: base.Add(3 * time.Hour), want: "3h"},
		{name: "dias horas minutos", end: base.Add(26*time.Hour + 30*time.Minute), want: "1d 2h 30m"},
		{name: "fim antes do início", end: base.Add(-time.Hour), want: "0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTotalTime(base, tt.end); got != tt.want {
				t.Errorf("FormatTotalTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

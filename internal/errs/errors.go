package errs

import "errors"

var (
	ErrRequestNotFound    = errors.New("maintenance request not found")
	ErrAlreadyStarted     = errors.New("maintenance already started or finished")
	ErrNotInProgress      = errors.New("maintenance not started or already finished")
	ErrTechnicianRequired = errors.New("technician_name is required")
	ErrNotesRequired      = errors.New("resolution_notes is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

package appointment

import "github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrInvalidState  = httperr.ErrBusiness("invalid_state")
	ErrInvalidStatus = httperr.ErrBusiness("invalid_status")
)

// LiveStatuses are the statuses whose appointments occupy time.
var LiveStatuses = []string{string(StatusPending), string(StatusAccepted)}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Occupies reports whether an appointment in this status blocks its interval.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusAccepted
}

// ===============================
// Validations
// ===============================

// CanTransition allows pending -> accepted|rejected and accepted -> rejected.
// Rejected is terminal and nothing goes back to pending.
func CanTransition(from, to Status) error {
	switch {
	case from == StatusPending && (to == StatusAccepted || to == StatusRejected):
		return nil
	case from == StatusAccepted && to == StatusRejected:
		return nil
	}
	return ErrInvalidState
}

// InitialStatus: staff bookings are confirmed on creation, public ones wait
// for a decision.
func InitialStatus(byStaff bool) Status {
	if byStaff {
		return StatusAccepted
	}
	return StatusPending
}

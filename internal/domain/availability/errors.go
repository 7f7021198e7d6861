package availability

import "github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"

// Absence of availability is never an error: resolvers return an empty set or
// sequence for weekdays without schedule or durations longer than every window.
var (
	ErrInvalidClock     = httperr.ErrBusiness("invalid_time")
	ErrInvalidTimeRange = httperr.ErrBusiness("invalid_time_range")
	ErrInvalidDate      = httperr.ErrBusiness("invalid_date")
	ErrInvalidDuration  = httperr.ErrBusiness("invalid_duration")

	// Admission outcomes.
	ErrSlotNoLongerAvailable = httperr.ErrBusiness("slot_no_longer_available")
	ErrSlotInPast            = httperr.ErrBusiness("slot_in_past")
	ErrOutsideSchedule       = httperr.ErrBusiness("outside_working_hours")
	ErrOutsideHorizon        = httperr.ErrBusiness("outside_booking_horizon")
)

package dto

import "github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"

type AppointmentListDTO struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ServiceName string `json:"service_name"`
	Notes       string `json:"notes,omitempty"`
	ByStaff     bool   `json:"by_staff"`
}

func NewAppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			ServiceName: ap.Service.Name,
			Notes:       ap.Notes,
			ByStaff:     ap.CreatedBy != nil,
		})
	}
	return out
}

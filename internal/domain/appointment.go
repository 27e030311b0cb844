package domain

import (
	"time"
)

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment links a patient and a doctor at a point in time. The JSON field
// names match what the frontend consumes.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"time"
)

// Record is a medical record entry for a patient.
type Record struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patientId"`
	Details      string    `json:"details,omitempty"`
	Diagnosis    string    `json:"diagnosis,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

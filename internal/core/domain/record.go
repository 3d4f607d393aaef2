package domain

import "time"

// Appointment is a patient booking with a doctor. DoctorID references the
// owning identity; DoctorName is filled from the credential store on read.
type Appointment struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	Age         *int      `json:"age,omitempty"`
	DoctorID    string    `json:"doctorId"`
	DoctorName  string    `json:"doctor"`
	Date        string    `json:"date"`
	Symptoms    string    `json:"symptoms,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Prescription is written by a doctor for a patient.
type Prescription struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorID    string    `json:"doctorId"`
	DoctorName  string    `json:"doctor"`
	Diagnosis   string    `json:"diagnosis"`
	Medicines   string    `json:"medicines"`
	Notes       string    `json:"notes,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecordScope restricts which records a list query may return.
//
// All=true is the unrestricted admin view. Otherwise only records owned by
// DoctorID match, and an empty DoctorID matches nothing.
type RecordScope struct {
	All      bool
	DoctorID string
}

// MatchesNothing reports whether the scope can be answered without a query.
func (s RecordScope) MatchesNothing() bool {
	return !s.All && s.DoctorID == ""
}

// Matches reports whether a record owned by doctorID is visible in scope.
func (s RecordScope) Matches(doctorID string) bool {
	if s.All {
		return true
	}
	return s.DoctorID != "" && s.DoctorID == doctorID
}

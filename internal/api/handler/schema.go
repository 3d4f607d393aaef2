package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username    string `json:"username"    validate:"required,min=3,max=64"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Password    string `json:"password"    validate:"required,min=4,max=72"`
	Role        string `json:"role"        validate:"omitempty,oneof=admin doctor"`
	DisplayName string `json:"displayName" validate:"max=100"`
	Speciality  string `json:"speciality"  validate:"max=100"`
}

// loginRequest accepts the identifier under any of the names the web client
// has used for it.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

type identityResponse struct {
	ID          string `json:"id"`
	Identifier  string `json:"identifier"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	DisplayName string    `json:"displayName,omitempty"`
	Speciality  string    `json:"speciality,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type loginResponse struct {
	Role      string           `json:"role"`
	Token     string           `json:"token,omitempty"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      identityResponse `json:"user"`
}

// --- Appointments ---

type bookAppointmentRequest struct {
	PatientName string `json:"patientName" validate:"required,max=200"`
	Age         *int   `json:"age"         validate:"omitempty,gte=0,lte=150"`
	Doctor      string `json:"doctor"      validate:"required,max=200"`
	Date        string `json:"date"        validate:"required,max=64"`
	Symptoms    string `json:"symptoms"    validate:"max=2000"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	Age         *int      `json:"age,omitempty"`
	DoctorID    string    `json:"doctorId"`
	Doctor      string    `json:"doctor"`
	Date        string    `json:"date"`
	Symptoms    string    `json:"symptoms,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type bookingResponse struct {
	Message     string              `json:"message"`
	Appointment appointmentResponse `json:"appointment"`
}

// --- Prescriptions ---

// writePrescriptionRequest has no doctor field: the author is the caller.
type writePrescriptionRequest struct {
	PatientName string `json:"patientName" validate:"required,max=200"`
	Diagnosis   string `json:"diagnosis"   validate:"required,max=2000"`
	Medicines   string `json:"medicines"   validate:"required,max=2000"`
	Notes       string `json:"notes"       validate:"max=2000"`
	Date        string `json:"date"        validate:"required,max=64"`
}

type prescriptionResponse struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorID    string    `json:"doctorId"`
	Doctor      string    `json:"doctor"`
	Diagnosis   string    `json:"diagnosis"`
	Medicines   string    `json:"medicines"`
	Notes       string    `json:"notes,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type writePrescriptionResponse struct {
	Message      string               `json:"message"`
	Prescription prescriptionResponse `json:"prescription"`
}

// --- Doctors ---

type doctorResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Speciality  string `json:"speciality,omitempty"`
}

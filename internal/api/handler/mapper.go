package handler

import "github.com/smartcare/clinic-api/internal/core/domain"

// --- Domain → HTTP response mappers ---
// Password hashes never leave the domain: userResponse has no field for them.

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{
		ID:          id.ID,
		Identifier:  id.Identifier,
		Role:        string(id.Role),
		DisplayName: id.DisplayName,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.Role),
		DisplayName: u.DisplayName,
		Speciality:  u.Speciality,
		CreatedAt:   u.CreatedAt,
	}
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PatientName: a.PatientName,
		Age:         a.Age,
		DoctorID:    a.DoctorID,
		Doctor:      a.DoctorName,
		Date:        a.Date,
		Symptoms:    a.Symptoms,
		CreatedAt:   a.CreatedAt,
	}
}

func toAppointmentResponses(items []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func toPrescriptionResponse(p *domain.Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:          p.ID,
		PatientName: p.PatientName,
		DoctorID:    p.DoctorID,
		Doctor:      p.DoctorName,
		Diagnosis:   p.Diagnosis,
		Medicines:   p.Medicines,
		Notes:       p.Notes,
		Date:        p.Date,
		CreatedAt:   p.CreatedAt,
	}
}

func toPrescriptionResponses(items []*domain.Prescription) []prescriptionResponse {
	out := make([]prescriptionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPrescriptionResponse(p))
	}
	return out
}

func toDoctorResponse(u *domain.User) doctorResponse {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}
	return doctorResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: name,
		Speciality:  u.Speciality,
	}
}

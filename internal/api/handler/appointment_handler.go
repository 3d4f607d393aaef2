package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/api/metrics"
	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// IdempotencyKeyHeader lets a client retry a booking without creating a
// duplicate appointment.
const IdempotencyKeyHeader = "Idempotency-Key"

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Book handles POST /appointments. Booking is public.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Replay-safe booking key"
// @Param        body             body      bookAppointmentRequest  true   "Booking form"
// @Success      201              {object}  bookingResponse
// @Success      200              {object}  bookingResponse  "Replayed booking"
// @Failure      400              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Book(c.Request().Context(), callerFrom(c), ports.BookAppointmentInput{
		PatientName:    req.PatientName,
		Age:            req.Age,
		Doctor:         req.Doctor,
		Date:           req.Date,
		Symptoms:       req.Symptoms,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader)),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		metrics.AppointmentsBookedTotal.WithLabelValues("replayed").Inc()
	} else {
		metrics.AppointmentsBookedTotal.WithLabelValues("created").Inc()
	}

	return c.JSON(status, bookingResponse{
		Message:     "Appointment saved",
		Appointment: toAppointmentResponse(result.Appointment),
	})
}

// List handles GET /appointments and GET /admin/appointments. Doctors see
// their own appointments, admins see all of them, newest first.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   appointmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /appointments [get]
// @Router       /admin/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponses(items))
}

// Delete handles DELETE /admin/appointments/:id.
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsDeletedTotal.WithLabelValues(domain.EntityAppointment).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Appointment deleted"})
}
